package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// MaxOpenBytes is the largest file open_file will read.
const MaxOpenBytes int64 = 10 * 1024 * 1024

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Dialog    DialogConfig
	Files     FilesConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds the local command surface configuration.
type ServerConfig struct {
	Port         string   `envconfig:"PORT" default:"1430"`
	Host         string   `envconfig:"HOST" default:"127.0.0.1"`
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"tauri://localhost,http://localhost:1420"`
}

// DialogConfig selects how file dialogs are presented.
type DialogConfig struct {
	// Backend is "native" (platform chooser process) or "frontend" (web view over WebSocket).
	Backend string `envconfig:"DIALOG_BACKEND" default:"native"`
}

// FilesConfig holds the document filter and read limits.
type FilesConfig struct {
	Extension    string `envconfig:"FILE_EXTENSION" default:"md"`
	FilterLabel  string `envconfig:"FILE_FILTER_LABEL" default:"Markdown"`
	MaxOpenBytes int64  `envconfig:"MAX_OPEN_BYTES" default:"10485760"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot express as types.
func (c *Config) Validate() error {
	switch c.Dialog.Backend {
	case "native", "frontend":
	default:
		return fmt.Errorf("invalid dialog backend %q: want native or frontend", c.Dialog.Backend)
	}
	if c.Files.Extension == "" {
		return fmt.Errorf("file extension must not be empty")
	}
	if c.Files.MaxOpenBytes <= 0 {
		return fmt.Errorf("max open bytes must be positive, got %d", c.Files.MaxOpenBytes)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "1430",
			Host:         "127.0.0.1",
			AllowOrigins: []string{"tauri://localhost", "http://localhost:1420"},
		},
		Dialog: DialogConfig{
			Backend: "native",
		},
		Files: FilesConfig{
			Extension:    "md",
			FilterLabel:  "Markdown",
			MaxOpenBytes: MaxOpenBytes,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}
