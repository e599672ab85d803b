package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdf2json/client/internal/config"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `pdf2json %s
Client for the pdf2json conversion service

Usage:
  pdf2json serve                     Start the local web interface
  pdf2json convert [-copy] <file>    Convert one PDF and print the JSON
  pdf2json status [-watch]           Check the conversion API health
  pdf2json version                   Show version information
  pdf2json help                      Show this help message

Configuration is read from $PDF2JSON_CONFIG, or pdf2json.yaml next to the
executable (created with defaults on first run).
`, Version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]

	switch cmd {
	case "help", "-h", "--help":
		usage()
		return
	case "version", "--version":
		fmt.Printf("pdf2json %s (built %s)\n", Version, BuildTime)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	switch cmd {
	case "serve", "server", "web":
		os.Exit(cmdServe(cfg, logger))
	case "convert":
		os.Exit(cmdConvert(cfg, logger, args))
	case "status":
		os.Exit(cmdStatus(cfg, logger, args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	configPath := os.Getenv("PDF2JSON_CONFIG")
	if configPath == "" {
		exePath, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		configPath = filepath.Join(filepath.Dir(exePath), "pdf2json.yaml")
	}
	return config.LoadConfig(configPath)
}

func newLogger(cfg *config.AppConfig) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}
