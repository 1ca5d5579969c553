// Package config loads server settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration.
type Config struct {
	// DatabaseURL selects the persistent store. Empty means in-memory.
	DatabaseURL string `env:"DATABASE_URL"`
	Port        string `env:"PORT" envDefault:"5000"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	HTTP HTTPConfig `envPrefix:"HTTP_"`
	Log  LogConfig  `envPrefix:"LOG_"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	AutoMigrate    bool `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// HTTPConfig holds the http.Server timeouts.
type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LogConfig is passed to logging.Setup.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"INFO"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load reads .env (if any) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without reading .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}
	return &cfg, nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// Persistent reports whether a database is configured.
func (c *Config) Persistent() bool {
	return c.DatabaseURL != ""
}
