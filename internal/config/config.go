// Package config provides YAML-based configuration for the pdf2json client.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	// Server configuration for the local UI host
	Server ServerConfig `yaml:"server"`

	// Remote conversion API
	API APIConfig `yaml:"api"`

	// Clipboard export
	Clipboard ClipboardConfig `yaml:"clipboard"`

	// Advanced options
	Advanced AdvancedConfig `yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	EnableCORS   bool   `yaml:"enableCORS"`
	AllowOrigins string `yaml:"allowOrigins"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
	BodyLimit    string `yaml:"bodyLimit"`
}

// APIConfig points at the conversion service
type APIConfig struct {
	BaseURL               string `yaml:"baseURL"`
	HealthIntervalSeconds int    `yaml:"healthIntervalSeconds"`
}

// ClipboardConfig contains clipboard fallback settings
type ClipboardConfig struct {
	// CopyCommand overrides the auto-detected fallback copy program.
	CopyCommand   []string `yaml:"copyCommand,omitempty"`
	TempDirectory string   `yaml:"tempDirectory,omitempty"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel                string `yaml:"logLevel"`
	EnableRequestLogging    bool   `yaml:"enableRequestLogging"`
	WebSocketMaxMessageSize int    `yaml:"webSocketMaxMessageSizeKB"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "127.0.0.1",
			EnableCORS:   false,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 0,
			IdleTimeout:  120,
			BodyLimit:    "20M",
		},
		API: APIConfig{
			BaseURL:               "http://localhost:8085",
			HealthIntervalSeconds: 30,
		},
		Advanced: AdvancedConfig{
			LogLevel:                "info",
			EnableRequestLogging:    true,
			WebSocketMaxMessageSize: 64,
		},
	}
}

// LoadConfig loads configuration from a YAML file, creating it with defaults
// when it does not exist yet.
func LoadConfig(configPath string) (*AppConfig, error) {
	var config *AppConfig

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		config = DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		config = DefaultConfig()
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to a YAML file
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	header := []byte("# pdf2json client configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if baseURL := os.Getenv("PDF2JSON_API_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	if level := os.Getenv("PDF2JSON_LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}

	if cmd := strings.Fields(os.Getenv("PDF2JSON_COPY_COMMAND")); len(cmd) > 0 {
		c.Clipboard.CopyCommand = cmd
	}
}

// Validate checks the loaded configuration
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.baseURL %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.API.HealthIntervalSeconds < 0 {
		return fmt.Errorf("invalid api.healthIntervalSeconds %d", c.API.HealthIntervalSeconds)
	}
	return nil
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// HealthInterval returns the health polling period
func (c *AppConfig) HealthInterval() time.Duration {
	return time.Duration(c.API.HealthIntervalSeconds) * time.Second
}

// SlogLevel maps the configured log level onto slog
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Advanced.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
