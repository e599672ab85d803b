// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	ctrl    Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, ctrl Controller) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		ctrl:    ctrl,
	}
}

// HandleHealth returns the local server status and the last known status of
// the conversion API
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"apiStatus": h.ctrl.APIStatus(),
	})
}
