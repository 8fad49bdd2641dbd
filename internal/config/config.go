// Package config loads and validates application configuration from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT, default=8080"`

	// AppEnv selects the log format: "dev" and "local" get coloured text,
	// anything else JSON.
	AppEnv string `env:"APP_ENV, default=production"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL, required"`

	// JWTSecret is the HS256 key access tokens are signed with. Required.
	JWTSecret string `env:"JWT_SECRET, required"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated
	// list to override.
	CORSOrigins List `env:"CORS_ORIGINS, default=http://localhost:5173"`

	// RateLimitRequests requests are allowed per client IP in every
	// RateLimitWindow.
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS, default=100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW, default=10m"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES, default=1048576"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START, default=false"`
}

// List is a comma-separated environment value. Entries are trimmed and
// empty entries dropped.
type List []string

// EnvDecode implements envconfig.Decoder.
func (l *List) EnvDecode(val string) error {
	var out List
	for _, part := range strings.Split(val, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	*l = out
	return nil
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.RateLimitRequests < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be at least 1"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.MaxBodyBytes < 1 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be at least 1"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the server runs on a developer machine.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "dev" || c.AppEnv == "local"
}
