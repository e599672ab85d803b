package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocket message types
const (
	// Client -> Server messages
	MsgTypePing   = "ping"
	MsgTypeUpload = "upload"
	MsgTypeCopy   = "copy"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeState     = "state"
	MsgTypePong      = "pong"
	MsgTypeError     = "error"
)

// WSMessage is the envelope of every WebSocket frame
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSErrorResponse is the payload of an error frame
type WSErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WebSocketHandler pushes UI snapshots to the page and accepts commands
type WebSocketHandler struct {
	ctrl      Controller
	state     StateSource
	upgrader  websocket.Upgrader
	readLimit int64
	logger    *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. maxMessageKB bounds
// inbound frames.
func NewWebSocketHandler(ctrl Controller, state StateSource, maxMessageKB int, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxMessageKB <= 0 {
		maxMessageKB = 64
	}
	return &WebSocketHandler{
		ctrl:  ctrl,
		state: state,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The page is served by this same process
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		readLimit: int64(maxMessageKB) * 1024,
		logger:    logger,
	}
}

// wsConn serializes writes to a single connection
type wsConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) send(msg WSMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg.Timestamp = time.Now().UnixMilli()
	return w.ws.WriteJSON(msg)
}

// HandleWebSocket upgrades the connection, streams snapshots and handles
// client commands until the client goes away
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()
	ws.SetReadLimit(wsh.readLimit)

	conn := &wsConn{ws: ws}
	wsh.logger.Info("ws.connected", "remote", c.RealIP())

	updates, unsubscribe := wsh.state.Subscribe()
	defer unsubscribe()

	conn.send(WSMessage{Type: MsgTypeConnected})

	go func() {
		for snap := range updates {
			if err := conn.send(WSMessage{Type: MsgTypeState, Payload: mustJSON(snap)}); err != nil {
				wsh.logger.Debug("ws.send_failed", "error", err)
				return
			}
		}
	}()

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsh.logger.Warn("ws.read_error", "error", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			conn.send(WSMessage{Type: MsgTypePong})
		case MsgTypeUpload:
			go func() {
				if _, err := wsh.ctrl.Upload(context.Background()); err != nil {
					wsh.sendError(conn, fromControllerError(err))
				}
			}()
		case MsgTypeCopy:
			go func() {
				if err := wsh.ctrl.CopyResult(context.Background()); err != nil {
					wsh.sendError(conn, fromControllerError(err))
				}
			}()
		default:
			wsh.sendError(conn, &APIError{Code: "INVALID_TYPE", Message: "Unknown message type: " + msg.Type})
		}
	}

	wsh.logger.Info("ws.disconnected", "remote", c.RealIP())
	return nil
}

func (wsh *WebSocketHandler) sendError(conn *wsConn, apiErr *APIError) {
	if err := conn.send(WSMessage{
		Type:    MsgTypeError,
		Payload: mustJSON(WSErrorResponse{Message: apiErr.Message, Code: apiErr.Code}),
	}); err != nil {
		wsh.logger.Debug("ws.send_failed", "error", err)
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
