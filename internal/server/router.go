package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/handler"
	"github.com/rentloop/rentloop/internal/latency"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/middleware"
	"github.com/rentloop/rentloop/internal/service"
)

// RouterConfig holds everything the mock server routes need.
type RouterConfig struct {
	Services *service.Services
	Tokens   *auth.TokenIssuer
	Logger   *slog.Logger

	// Metrics records request metrics; MetricsHandler, when set, is mounted at /metrics.
	Metrics        metrics.Recorder
	MetricsHandler http.Handler

	// Latency, when set, delays each /api route by its operation's delay.
	Latency *latency.Simulator

	HealthChecks       map[string]handler.HealthChecker
	CORSAllowedOrigins []string
	MaxRequestBodySize int64
	IsDevelopment      bool
}

// NewRouter builds the chi router with the marketplace route table.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	healthHandler := handler.NewHealthHandler(cfg.HealthChecks)
	authHandler := handler.NewAuthHandler(cfg.Services.Auth, cfg.Tokens, logger)
	itemHandler := handler.NewItemHandler(cfg.Services.Items, logger)
	rentalHandler := handler.NewRentalHandler(cfg.Services.Rentals, logger)
	catalogHandler := handler.NewCatalogHandler(cfg.Services.Catalog, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, cfg.Metrics))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins...)))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/healthcheck", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	delay := func(op latency.Operation) func(http.Handler) http.Handler {
		return middleware.Latency(cfg.Latency, op)
	}

	r.With(delay(latency.OpLogin)).Post("/login", authHandler.Login)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(middleware.AuthConfig{Logger: logger, Verifier: cfg.Tokens}))

		r.With(delay(latency.OpListUsers)).Get("/users", catalogHandler.ListUsers)
		r.With(delay(latency.OpGetUser)).Get("/user/{id}", catalogHandler.GetUser)
		r.With(delay(latency.OpListCategories)).Get("/categories", catalogHandler.ListCategories)

		r.With(delay(latency.OpCreateItem)).Post("/create-item", itemHandler.Create)
		r.Route("/items", func(r chi.Router) {
			r.With(delay(latency.OpListItems)).Get("/", itemHandler.List)
			r.With(delay(latency.OpCreateItem)).Post("/", itemHandler.Create)
			r.With(delay(latency.OpListAvailable)).Get("/available", itemHandler.ListAvailable)
			r.With(delay(latency.OpSearchItems)).Get("/search", itemHandler.Search)
			r.With(delay(latency.OpListMyItems)).Get("/my", itemHandler.ListMine)
			r.With(delay(latency.OpGetItem)).Get("/{id}", itemHandler.Get)
			r.With(delay(latency.OpUpdateItem)).Put("/{id}", itemHandler.Update)
			r.With(delay(latency.OpDeleteItem)).Delete("/{id}", itemHandler.Delete)
		})

		r.Route("/rentals", func(r chi.Router) {
			r.With(delay(latency.OpCreateRental)).Post("/", rentalHandler.Create)
			r.With(delay(latency.OpListMyRentals)).Get("/my", rentalHandler.ListMine)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
