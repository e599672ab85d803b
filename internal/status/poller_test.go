package status

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pdf2json/client/internal/apiclient"
	"github.com/pdf2json/client/internal/models"
	"github.com/pdf2json/client/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusLog struct {
	mu  sync.Mutex
	all []models.APIStatus
}

func (l *statusLog) SetAPIStatus(s models.APIStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, s)
}

func (l *statusLog) list() []models.APIStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.APIStatus(nil), l.all...)
}

type proberFunc func(ctx context.Context) error

func (f proberFunc) Health(ctx context.Context) error { return f(ctx) }

func TestPoller_Check(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   models.APIStatus
	}{
		{"healthy", http.StatusOK, `{"status":"healthy"}`, models.APIStatusHealthy},
		{"server error", http.StatusInternalServerError, `{"status":"healthy"}`, models.APIStatusOffline},
		{"missing field", http.StatusOK, `{}`, models.APIStatusOffline},
		{"wrong value", http.StatusOK, `{"status":"starting"}`, models.APIStatusOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeConverter()
			defer fake.Close()
			fake.SetHealthResponse(tt.status, tt.body)

			log := &statusLog{}
			p := NewPoller(apiclient.New(fake.URL, nil, nil), log, time.Second, nil)

			assert.Equal(t, tt.want, p.Check(context.Background()))
			assert.Equal(t, []models.APIStatus{models.APIStatusChecking, tt.want}, log.list())
		})
	}

	t.Run("prober error", func(t *testing.T) {
		log := &statusLog{}
		p := NewPoller(proberFunc(func(context.Context) error { return errors.New("dial tcp: refused") }), log, time.Second, nil)
		assert.Equal(t, models.APIStatusOffline, p.Check(context.Background()))
	})
}

func TestPoller_StartProbesImmediatelyAndRepeats(t *testing.T) {
	fake := testutil.NewFakeConverter()
	defer fake.Close()

	log := &statusLog{}
	p := NewPoller(apiclient.New(fake.URL, nil, nil), log, 20*time.Millisecond, nil)
	p.Start(context.Background())
	p.Start(context.Background())

	require.Eventually(t, func() bool { return fake.HealthCalls() >= 3 }, 5*time.Second, 10*time.Millisecond)
	p.Stop()

	calls := fake.HealthCalls()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, calls, fake.HealthCalls(), "no probes after Stop")
	assert.Contains(t, log.list(), models.APIStatusHealthy)
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	prober := proberFunc(func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(prober, &statusLog{}, 10*time.Millisecond, nil)
	p.Start(ctx)
	cancel()
	p.Stop()

	mu.Lock()
	n := calls
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, n, calls)
}

func TestPoller_StopWithoutStart(t *testing.T) {
	p := NewPoller(proberFunc(func(context.Context) error { return nil }), &statusLog{}, 0, nil)
	assert.NotPanics(t, p.Stop)
	assert.Equal(t, DefaultInterval, p.interval)
}
