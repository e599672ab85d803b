// handlers_state.go - UI snapshot handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// StateHandlerImpl implements the StateHandler interface
type StateHandlerImpl struct {
	state StateSource
}

// NewStateHandler creates a new state handler
func NewStateHandler(state StateSource) StateHandler {
	return &StateHandlerImpl{state: state}
}

// HandleGetState returns the current UI snapshot
func (h *StateHandlerImpl) HandleGetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Snapshot())
}

// HandleGetStateMsgpack returns the current UI snapshot in MessagePack format
func (h *StateHandlerImpl) HandleGetStateMsgpack(c echo.Context) error {
	data, err := msgpack.Marshal(h.state.Snapshot())
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}
