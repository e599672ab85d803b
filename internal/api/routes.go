// routes.go - Route registration helpers
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Controller     Controller
	State          StateSource
	Version        string
	WSMaxMessageKB int
	Logger         *slog.Logger
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Converter ConverterHandler
	State     StateHandler
	Stream    StreamHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Controller),
		Converter: NewConverterHandler(deps.Controller),
		State:     NewStateHandler(deps.State),
		Stream:    NewWebSocketHandler(deps.Controller, deps.State, deps.WSMaxMessageKB, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", handlers.Health.HandleHealth)

	apiGroup.GET("/state", handlers.State.HandleGetState)
	apiGroup.GET("/state/msgpack", handlers.State.HandleGetStateMsgpack)

	apiGroup.POST("/file", handlers.Converter.HandleSelectFile)
	apiGroup.POST("/upload", handlers.Converter.HandleUpload)
	apiGroup.POST("/copy", handlers.Converter.HandleCopy)

	apiGroup.GET("/ws", handlers.Stream.HandleWebSocket)
}

// MiddlewareOptions configures SetupMiddleware
type MiddlewareOptions struct {
	RequestLogging bool
	BodyLimit      string
	EnableCORS     bool
	AllowOrigins   string
	Debug          bool
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	e.HTTPErrorHandler = ErrorHandler(opts.Debug)

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !opts.RequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || path == "/api/ws" || !strings.HasPrefix(path, "/api")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			Limit: opts.BodyLimit,
			// File selection streams its body and validates the real size.
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == "/api/file"
			},
		}))
	}

	if opts.EnableCORS {
		origins := strings.Split(opts.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
