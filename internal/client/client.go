// Package client defines the one call surface the presentation layer uses to
// reach the marketplace, and selects its implementation from configuration.
package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rentloop/rentloop/internal/client/httpclient"
	"github.com/rentloop/rentloop/internal/client/mock"
	"github.com/rentloop/rentloop/internal/config"
	"github.com/rentloop/rentloop/internal/latency"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/seed"
	"github.com/rentloop/rentloop/internal/service"
	"github.com/rentloop/rentloop/internal/session"
	"github.com/rentloop/rentloop/internal/storage"
	"github.com/rentloop/rentloop/internal/store"
)

// Client is the marketplace API. Operations that need an actor use the
// persisted session; failures carry a model error kind.
type Client interface {
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context) error
	CurrentUserID(ctx context.Context) (int64, bool, error)

	ListItems(ctx context.Context) ([]model.Item, error)
	ListAvailableItems(ctx context.Context) ([]model.ItemWithOwner, error)
	SearchItems(ctx context.Context, params model.SearchParams) ([]model.ItemWithOwner, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	ListMyItems(ctx context.Context) ([]model.Item, error)

	CreateItem(ctx context.Context, input model.ItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) (*model.MessageResponse, error)

	CreateRentalRequest(ctx context.Context, input model.RentalInput) (*model.RentalRequest, error)
	ListMyRentals(ctx context.Context) ([]model.RentalWithDetails, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

var (
	_ Client = (*mock.Client)(nil)
	_ Client = (*httpclient.Client)(nil)
)

// Deps are optional collaborators for New.
type Deps struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// New builds the Client selected by cfg.Backend. The returned function
// releases session storage.
func New(ctx context.Context, cfg *config.Config, deps Deps) (Client, func() error, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNoop()
	}

	kv, closeKV, err := storage.Open(ctx, cfg.SessionStore, cfg.SessionFile, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open session storage: %w", err)
	}
	sessions := session.NewStore(kv)

	switch cfg.Backend {
	case config.BackendHTTP:
		deps.Logger.Info("client_ready", "backend", cfg.Backend, "api_url", cfg.APIURL)
		return httpclient.New(cfg.APIURL, httpclient.NewHTTPClient(cfg.HTTPClientTimeout), sessions), closeKV, nil

	case config.BackendMock, "":
		svcs, err := NewServices(ctx, cfg, deps.Metrics)
		if err != nil {
			_ = closeKV()
			return nil, nil, err
		}
		deps.Logger.Info("client_ready", "backend", config.BackendMock, "latency_scale", cfg.LatencyScale)
		return mock.New(mock.Options{
			Services: svcs,
			Sessions: sessions,
			Latency:  latency.New(nil, cfg.LatencyScale),
			Metrics:  deps.Metrics,
			Logger:   deps.Logger,
		}), closeKV, nil

	default:
		_ = closeKV()
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewServices loads seed data and wires the mock backend's services.
func NewServices(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*service.Services, error) {
	ds, err := seed.Load(ctx, SeedOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}
	st := store.New(ds.Users, ds.Categories, ds.Items)
	return service.New(st, service.Options{
		PersistRentals:    cfg.PersistRentals,
		VerifyCredentials: cfg.VerifyCredentials,
	}, recorder), nil
}

// SeedOptions maps configuration onto seed.Options.
func SeedOptions(cfg *config.Config) seed.Options {
	return seed.Options{
		Source:         seed.Source(cfg.SeedSource),
		File:           cfg.SeedFile,
		FakeUsers:      cfg.SeedFakeUsers,
		FakeItems:      cfg.SeedFakeItems,
		FakeSeed:       cfg.SeedFakeSeed,
		DatabaseURL:    cfg.DatabaseURL,
		DatabaseDriver: cfg.DatabaseDriver,
		HashPasswords:  cfg.VerifyCredentials,
	}
}
