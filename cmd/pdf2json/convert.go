package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdf2json/client/internal/apiclient"
	"github.com/pdf2json/client/internal/config"
	"github.com/pdf2json/client/internal/controller"
	"github.com/pdf2json/client/internal/intake"
	"github.com/pdf2json/client/internal/view"
)

func cmdConvert(cfg *config.AppConfig, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	copyResult := fs.Bool("copy", false, "copy the JSON to the clipboard")
	quiet := fs.Bool("quiet", false, "print only the JSON or the error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: file path required")
		usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := view.NewText(os.Stdout)
	out.Quiet = *quiet
	client := apiclient.New(cfg.API.BaseURL, nil, logger)
	ctrl := controller.New(out, client, newClipboard(cfg, logger), logger)

	file, err := intake.FromPath(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := ctrl.SelectFile(file); err != nil {
		return 1
	}

	result, err := ctrl.Upload(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if result.Failure != nil {
		return 1
	}

	if *copyResult {
		if err := ctrl.CopyResult(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return 0
}
