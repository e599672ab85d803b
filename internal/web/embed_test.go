package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	require.NoError(t, RegisterStaticRoutes(e))

	tests := []struct {
		path     string
		contains string
	}{
		{"/", `id="uploadArea"`},
		{"/some/client/route", `id="uploadArea"`},
		{"/app.js", "WebSocket"},
		{"/app.js", "res.ok"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestAppScriptPingsFromOneTimer(t *testing.T) {
	e := echo.New()
	require.NoError(t, RegisterStaticRoutes(e))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Reconnects must not add timers.
	script := rec.Body.String()
	assert.Equal(t, 1, strings.Count(script, "setInterval("))
	connect := script[strings.Index(script, "function connect()"):]
	connect = connect[:strings.Index(connect, "\n    }\n")]
	assert.NotContains(t, connect, "setInterval(")
}
