package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdf2json/client/internal/apiclient"
	"github.com/pdf2json/client/internal/config"
	"github.com/pdf2json/client/internal/models"
	"github.com/pdf2json/client/internal/status"
	"github.com/pdf2json/client/internal/view"
)

func cmdStatus(cfg *config.AppConfig, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep polling until interrupted")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := view.NewText(os.Stdout)
	out.Quiet = !*watch
	poller := status.NewPoller(apiclient.New(cfg.API.BaseURL, nil, logger), out, cfg.HealthInterval(), logger)

	if !*watch {
		if poller.Check(ctx) != models.APIStatusHealthy {
			return 1
		}
		return 0
	}

	poller.Start(ctx)
	<-ctx.Done()
	poller.Stop()
	return 0
}
