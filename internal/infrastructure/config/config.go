package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Gateway GatewayConfig
	Session SessionConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

type GatewayConfig struct {
	// BaseURL is the API gateway fronting catalog and booking.
	BaseURL string `env:"BOOKING_API_BASE_URL,  default=http://localhost:8080"`
	// AuthBaseURL addresses the auth service directly.
	AuthBaseURL string        `env:"BOOKING_AUTH_BASE_URL, default=http://localhost:9000"`
	Timeout     time.Duration `env:"BOOKING_HTTP_TIMEOUT,  default=30s"`
}

type SessionConfig struct {
	// Backend selects the session store: "file" or "redis".
	Backend string `env:"SESSION_BACKEND, default=file"`
	// File is the session file path; empty means the default under the
	// user config directory.
	File string `env:"SESSION_FILE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MetricsConfig struct {
	// Addr enables the debug /metrics listener when non-empty.
	Addr string `env:"METRICS_ADDR"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// SessionFile resolves the session file path, defaulting to
// <user config dir>/booking-client/session.json.
func (c *Config) SessionFile() string {
	if c.Session.File != "" {
		return c.Session.File
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "booking-client", "session.json")
}
