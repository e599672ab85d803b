package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pdf2json/client/internal/api"
	"github.com/pdf2json/client/internal/apiclient"
	"github.com/pdf2json/client/internal/clipboard"
	"github.com/pdf2json/client/internal/config"
	"github.com/pdf2json/client/internal/controller"
	"github.com/pdf2json/client/internal/status"
	"github.com/pdf2json/client/internal/view"
	"github.com/pdf2json/client/internal/web"
)

func cmdServe(cfg *config.AppConfig, logger *slog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := view.NewState()
	client := apiclient.New(cfg.API.BaseURL, nil, logger)
	clip := newClipboard(cfg, logger)
	ctrl := controller.New(state, client, clip, logger)

	poller := status.NewPoller(client, ctrl, cfg.HealthInterval(), logger)
	poller.Start(ctx)
	defer poller.Stop()

	e := echo.New()
	e.HideBanner = true
	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging: cfg.Advanced.EnableRequestLogging,
		BodyLimit:      cfg.Server.BodyLimit,
		EnableCORS:     cfg.Server.EnableCORS,
		AllowOrigins:   cfg.Server.AllowOrigins,
		Debug:          cfg.SlogLevel() == slog.LevelDebug,
	})
	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Controller:     ctrl,
		State:          state,
		Version:        Version,
		WSMaxMessageKB: cfg.Advanced.WebSocketMaxMessageSize,
		Logger:         logger,
	}))
	if err := web.RegisterStaticRoutes(e); err != nil {
		logger.Warn("failed to register static routes", "error", err)
	}

	// Uploads have no timeout, so WriteTimeout stays as configured (0 = none).
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           PDF to JSON Converter                           ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  API:       %-46s║\n", cfg.API.BaseURL)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.StartServer(s)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("shutdown initiated", "timeout", "10s")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return 0
}

func newClipboard(cfg *config.AppConfig, logger *slog.Logger) *clipboard.Fallback {
	clip := clipboard.New(cfg.Clipboard.CopyCommand, logger)
	if cmd, ok := clip.Secondary.(*clipboard.Command); ok {
		cmd.TempDir = cfg.Clipboard.TempDirectory
	}
	return clip
}
