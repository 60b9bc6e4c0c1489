package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the chat client configuration loaded from environment variables.
type Config struct {
	// Agent endpoint
	Endpoint   string `env:"AGUI_ENDPOINT"`
	APIKey     string `env:"AGUI_API_KEY"`
	AuthHeader string `env:"AGUI_AUTH_HEADER"`
	AuthScheme string `env:"AGUI_AUTH_SCHEME"`

	// Transport
	ConnectTimeout time.Duration `env:"AGUI_CONNECT_TIMEOUT" envDefault:"30s"`
	ReadTimeout    time.Duration `env:"AGUI_READ_TIMEOUT" envDefault:"5m"`

	// Local tools
	EnableDemoTools bool `env:"AGUI_DEMO_TOOLS" envDefault:"true"`

	// MCP tool import (optional). Command is a stdio MCP server binary;
	// MCPSSEURL connects to an SSE MCP server instead.
	MCPCommand string `env:"AGUI_MCP_COMMAND"`
	MCPSSEURL  string `env:"AGUI_MCP_SSE_URL"`

	LogLevel string `env:"AGUI_LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("AGUI_ENDPOINT is required (e.g. http://localhost:8000/api/agent)")
	}

	return cfg, nil
}

func (c *Config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
