package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "1430", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420"}, cfg.Server.AllowOrigins)

	// Dialog and file config
	assert.Equal(t, "native", cfg.Dialog.Backend)
	assert.Equal(t, "md", cfg.Files.Extension)
	assert.Equal(t, "Markdown", cfg.Files.FilterLabel)
	assert.Equal(t, int64(10*1024*1024), cfg.Files.MaxOpenBytes)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

var configKeys = []string{
	"PORT", "HOST", "CORS_ORIGINS", "DIALOG_BACKEND", "FILE_EXTENSION", "FILE_FILTER_LABEL",
	"MAX_OPEN_BYTES", "LOG_LEVEL", "LOG_DEV", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_ENABLED",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadMatchesDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "0.0.0.0",
		"CORS_ORIGINS":       "http://localhost:5173",
		"DIALOG_BACKEND":     "frontend",
		"FILE_EXTENSION":     "markdown",
		"FILE_FILTER_LABEL":  "Notes",
		"MAX_OPEN_BYTES":     "2048",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "frontend", cfg.Dialog.Backend)
	assert.Equal(t, "markdown", cfg.Files.Extension)
	assert.Equal(t, "Notes", cfg.Files.FilterLabel)
	assert.Equal(t, int64(2048), cfg.Files.MaxOpenBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown dialog backend", key: "DIALOG_BACKEND", value: "gtk"},
		{name: "non numeric limit", key: "MAX_OPEN_BYTES", value: "ten"},
		{name: "zero limit", key: "MAX_OPEN_BYTES", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			// LoadOrDefault falls back instead of failing
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}
