// Package main is the entrypoint for the mock marketplace HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/client"
	"github.com/rentloop/rentloop/internal/config"
	"github.com/rentloop/rentloop/internal/handler"
	"github.com/rentloop/rentloop/internal/latency"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/server"
	"github.com/rentloop/rentloop/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	recorder, metricsHandler := initMetrics(cfg)

	services, err := client.NewServices(ctx, cfg, recorder)
	if err != nil {
		logger.Error("failed to load seed data",
			slog.String("seed_source", cfg.SeedSource),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	stats := services.Catalog.Stats()
	logger.Info("registries_seeded",
		slog.String("seed_source", cfg.SeedSource),
		slog.Int("users", stats.Users),
		slog.Int("categories", stats.Categories),
		slog.Int("items", stats.Items),
	)

	var sim *latency.Simulator
	if cfg.ServerLatencyEnabled {
		sim = latency.New(nil, cfg.LatencyScale)
	}

	router := server.NewRouter(server.RouterConfig{
		Services:           services,
		Tokens:             auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Logger:             logger,
		Metrics:            recorder,
		MetricsHandler:     metricsHandler,
		Latency:            sim,
		HealthChecks:       healthChecks(services),
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		IsDevelopment:      cfg.IsDevelopment(),
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"seed_source", cfg.SeedSource,
		"persist_rentals", cfg.PersistRentals,
		"verify_credentials", cfg.VerifyCredentials,
		"server_latency", cfg.ServerLatencyEnabled,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initMetrics returns the Prometheus recorder and its scrape handler, or a
// no-op recorder and nil handler when metrics are disabled.
func initMetrics(cfg *config.Config) (metrics.Recorder, http.Handler) {
	if !cfg.MetricsEnabled {
		return metrics.NewNoop(), nil
	}
	prom := metrics.NewPrometheus()
	return prom, prom.Handler()
}

// healthChecks reports the in-memory registries as ready once seeded.
func healthChecks(services *service.Services) map[string]handler.HealthChecker {
	return map[string]handler.HealthChecker{
		"registries": handler.HealthCheckFunc(func(ctx context.Context) error {
			if services.Catalog.Stats().Users == 0 {
				return errors.New("no users seeded")
			}
			return nil
		}),
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
