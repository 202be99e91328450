// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backend variants.
const (
	BackendMock = "mock"
	BackendHTTP = "http"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins. The frontend dev server is allowed by default.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Client variant: "mock" (in-process) or "http"
	Backend           string        `env:"BACKEND" envDefault:"mock"`
	APIURL            string        `env:"API_URL" envDefault:"http://localhost:8080"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"30s"`

	// Session persistence: "memory", "file" or "redis"
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	SessionFile  string `env:"SESSION_FILE" envDefault:".rentloop/session.json"`
	RedisURL     string `env:"REDIS_URL"`

	// Simulated latency. 1 is the reference profile, 0 disables delays.
	LatencyScale         float64 `env:"LATENCY_SCALE" envDefault:"1"`
	ServerLatencyEnabled bool    `env:"SERVER_LATENCY_ENABLED" envDefault:"false"`

	// Seed data: "builtin", "file", "fake" or "postgres"
	SeedSource    string `env:"SEED_SOURCE" envDefault:"builtin"`
	SeedFile      string `env:"SEED_FILE"`
	SeedFakeUsers int    `env:"SEED_FAKE_USERS" envDefault:"10"`
	SeedFakeItems int    `env:"SEED_FAKE_ITEMS" envDefault:"50"`
	SeedFakeSeed  int64  `env:"SEED_FAKE_SEED" envDefault:"0"`

	// Database (PostgreSQL), only read when SEED_SOURCE=postgres
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"pgx"`

	// Behavior flags
	PersistRentals    bool `env:"PERSIST_RENTALS" envDefault:"false"`
	VerifyCredentials bool `env:"VERIFY_CREDENTIALS" envDefault:"false"`

	// Bearer tokens issued by the mock server
	JWTSecret string        `env:"JWT_SECRET" envDefault:"rentloop-dev-secret"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendMock:
	case BackendHTTP:
		if c.APIURL == "" {
			errs = append(errs, errors.New("API_URL is required when BACKEND=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("BACKEND must be %q or %q, got %q", BackendMock, BackendHTTP, c.Backend))
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreFile:
		if c.SessionFile == "" {
			errs = append(errs, errors.New("SESSION_FILE is required when SESSION_STORE=file"))
		}
	case SessionStoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore))
	}

	switch c.SeedSource {
	case "builtin", "fake":
	case "file":
		if c.SeedFile == "" {
			errs = append(errs, errors.New("SEED_FILE is required when SEED_SOURCE=file"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when SEED_SOURCE=postgres"))
		}
		if c.DatabaseDriver != "pgx" && c.DatabaseDriver != "postgres" {
			errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be pgx or postgres, got %q", c.DatabaseDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SEED_SOURCE %q", c.SeedSource))
	}

	if c.LatencyScale < 0 {
		errs = append(errs, errors.New("LATENCY_SCALE cannot be negative"))
	}
	if c.IsProduction() && c.JWTSecret == "rentloop-dev-secret" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}

	return errors.Join(errs...)
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
