// Package status polls the conversion API's health endpoint.
package status

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pdf2json/client/internal/models"
)

// DefaultInterval is the time between two health probes.
const DefaultInterval = 30 * time.Second

// Prober checks the remote service. A nil error means healthy.
type Prober interface {
	Health(ctx context.Context) error
}

// Reporter receives every status change.
type Reporter interface {
	SetAPIStatus(status models.APIStatus)
}

// Poller probes immediately on Start and then on a fixed period, without
// backoff or jitter, until Stop is called or the context ends.
type Poller struct {
	prober   Prober
	reporter Reporter
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller. A non-positive interval uses DefaultInterval.
func NewPoller(prober Prober, reporter Reporter, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		prober:   prober,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

// Check runs one probe and reports Checking followed by the outcome.
// A probe may take at most one interval.
func (p *Poller) Check(ctx context.Context) models.APIStatus {
	p.reporter.SetAPIStatus(models.APIStatusChecking)

	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	status := models.APIStatusHealthy
	if err := p.prober.Health(ctx); err != nil {
		status = models.APIStatusOffline
		p.logger.Warn("status.api_offline", "error", err)
	}
	p.reporter.SetAPIStatus(status)
	return status
}

// Start launches the polling loop. Calling Start on a running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the loop and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
