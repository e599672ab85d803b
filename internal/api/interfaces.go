// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pdf2json/client/internal/models"
	"github.com/pdf2json/client/internal/view"
)

// ConverterHandler exposes the upload controller's operations
type ConverterHandler interface {
	HandleSelectFile(c echo.Context) error
	HandleUpload(c echo.Context) error
	HandleCopy(c echo.Context) error
}

// StateHandler serves UI snapshots
type StateHandler interface {
	HandleGetState(c echo.Context) error
	HandleGetStateMsgpack(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// StreamHandler pushes UI snapshots over a WebSocket
type StreamHandler interface {
	HandleWebSocket(c echo.Context) error
}

// Controller is the part of the upload controller the handlers drive.
// This allows mocking in tests
type Controller interface {
	HandleDrop(files []*models.SelectedFile) error
	Upload(ctx context.Context) (*models.UploadResult, error)
	CopyResult(ctx context.Context) error
	APIStatus() models.APIStatus
}

// StateSource provides snapshots and change notifications
type StateSource interface {
	Snapshot() view.Snapshot
	Subscribe() (<-chan view.Snapshot, func())
}
