package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "PDF2JSON_API_URL", "PDF2JSON_LOG_LEVEL", "PDF2JSON_COPY_COMMAND"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_CreatesDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "pdf2json.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8085", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval())
	assert.Equal(t, "127.0.0.1:8090", cfg.GetServerAddr())

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config should be written")

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pdf2json.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  baseURL: https://convert.example.com\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://convert.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.HealthIntervalSeconds)
	assert.Equal(t, 8090, cfg.Server.Port)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdf2json.yaml")
	t.Setenv("PORT", "9191")
	t.Setenv("PDF2JSON_API_URL", "http://192.168.50.91:8085")
	t.Setenv("PDF2JSON_LOG_LEVEL", "debug")
	t.Setenv("PDF2JSON_COPY_COMMAND", "xclip -selection clipboard")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "http://192.168.50.91:8085", cfg.API.BaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"xclip", "-selection", "clipboard"}, cfg.Clipboard.CopyCommand)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"bad yaml":     "api: [",
		"relative url": "api:\n  baseURL: /document\n",
		"ftp url":      "api:\n  baseURL: ftp://host\n",
		"bad port":     "server:\n  port: 70000\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pdf2json.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	cfg.Advanced.LogLevel = "WARN"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	cfg.Advanced.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}
