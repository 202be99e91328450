// Package mock implements the marketplace client against an in-process,
// in-memory backend with simulated network latency.
package mock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/latency"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/service"
	"github.com/rentloop/rentloop/internal/session"
)

// Client is the mock backend. Every operation waits for its simulated delay,
// then resolves the acting user from the session store and runs the
// business rules against the shared registries.
type Client struct {
	services *service.Services
	sessions *session.Store
	latency  *latency.Simulator
	metrics  metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Options configures a Client. Services and Sessions are required.
type Options struct {
	Services *service.Services
	Sessions *session.Store
	Latency  *latency.Simulator
	Metrics  metrics.Recorder
	Logger   *slog.Logger
}

// New creates a mock Client.
func New(opts Options) *Client {
	if opts.Latency == nil {
		opts.Latency = latency.New(nil, 1)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNoop()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		services: opts.Services,
		sessions: opts.Sessions,
		latency:  opts.Latency,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// do runs one operation: delay, identity lookup, then fn.
func (c *Client) do(ctx context.Context, op latency.Operation, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := c.run(ctx, op, fn)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = model.ErrorCode(err)
	}
	elapsed := time.Since(start)
	c.metrics.ObserveOperation(string(op), outcome, elapsed)
	c.logger.DebugContext(ctx, "mock_operation",
		"operation", string(op),
		"outcome", outcome,
		"duration_ms", elapsed.Milliseconds(),
	)
	return err
}

func (c *Client) run(ctx context.Context, op latency.Operation, fn func(ctx context.Context) error) error {
	if err := c.latency.Wait(ctx, op); err != nil {
		return err
	}

	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	if sess != nil {
		ctx = auth.ContextWithIdentity(ctx, &auth.Identity{UserID: sess.UserID, Token: sess.Token})
	}
	return fn(ctx)
}

// currentSession resolves the acting user. Unreadable session state and a
// token minted for a different user both count as logged out. Storage
// failures are returned.
func (c *Client) currentSession(ctx context.Context) (*model.Session, error) {
	sess, err := c.sessions.Current(ctx)
	if errors.Is(err, session.ErrCorrupt) {
		c.logger.WarnContext(ctx, "session_corrupt", "error", err)
		return nil, nil
	}
	if err != nil || sess == nil {
		return nil, err
	}

	// Sessions saved by the HTTP backend carry a JWT instead.
	parsed, err := auth.ParseSessionToken(sess.Token)
	if err != nil {
		return sess, nil
	}
	if parsed.UserID != sess.UserID {
		c.logger.WarnContext(ctx, "session_token_mismatch",
			"user_id", sess.UserID,
			"token_user_id", parsed.UserID,
		)
		return nil, nil
	}
	c.logger.DebugContext(ctx, "session_resolved",
		"user_id", sess.UserID,
		"session_age_ms", c.now().Sub(parsed.IssuedAt).Milliseconds(),
	)
	return sess, nil
}

// Login looks up the user by email, mints a fresh session token and
// persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var sess *model.Session
	err := c.do(ctx, latency.OpLogin, func(ctx context.Context) error {
		user, err := c.services.Auth.Authenticate(ctx, email, password)
		if err != nil {
			return err
		}
		token, err := auth.NewSessionToken(user.ID, c.now())
		if err != nil {
			return fmt.Errorf("mint session token: %w", err)
		}
		resp := &model.LoginResponse{
			Token:     token,
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		if err := c.sessions.Save(ctx, resp); err != nil {
			return err
		}
		sess = resp.Session()
		return nil
	})
	return sess, err
}

// Logout clears the persisted session.
func (c *Client) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}

// CurrentUserID reports the logged-in user, if any.
func (c *Client) CurrentUserID(ctx context.Context) (int64, bool, error) {
	sess, err := c.currentSession(ctx)
	if err != nil || sess == nil {
		return 0, false, err
	}
	return sess.UserID, true, nil
}

// ListItems implements client.Client.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	err := c.do(ctx, latency.OpListItems, func(ctx context.Context) error {
		out = c.services.Items.ListAll(ctx)
		return nil
	})
	return out, err
}

// ListAvailableItems implements client.Client.
func (c *Client) ListAvailableItems(ctx context.Context) ([]model.ItemWithOwner, error) {
	var out []model.ItemWithOwner
	err := c.do(ctx, latency.OpListAvailable, func(ctx context.Context) error {
		out = c.services.Items.ListAvailable(ctx)
		return nil
	})
	return out, err
}

// SearchItems implements client.Client.
func (c *Client) SearchItems(ctx context.Context, params model.SearchParams) ([]model.ItemWithOwner, error) {
	var out []model.ItemWithOwner
	err := c.do(ctx, latency.OpSearchItems, func(ctx context.Context) error {
		out = c.services.Items.Search(ctx, params)
		return nil
	})
	return out, err
}

// GetItem implements client.Client.
func (c *Client) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var out *model.Item
	err := c.do(ctx, latency.OpGetItem, func(ctx context.Context) error {
		var err error
		out, err = c.services.Items.Get(ctx, id)
		return err
	})
	return out, err
}

// ListMyItems implements client.Client.
func (c *Client) ListMyItems(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	err := c.do(ctx, latency.OpListMyItems, func(ctx context.Context) error {
		out = c.services.Items.ListMine(ctx)
		return nil
	})
	return out, err
}

// CreateItem implements client.Client.
func (c *Client) CreateItem(ctx context.Context, input model.ItemInput) (*model.Item, error) {
	var out *model.Item
	err := c.do(ctx, latency.OpCreateItem, func(ctx context.Context) error {
		var err error
		out, err = c.services.Items.Create(ctx, input)
		return err
	})
	return out, err
}

// UpdateItem implements client.Client.
func (c *Client) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	var out *model.Item
	err := c.do(ctx, latency.OpUpdateItem, func(ctx context.Context) error {
		var err error
		out, err = c.services.Items.Update(ctx, id, patch)
		return err
	})
	return out, err
}

// DeleteItem implements client.Client.
func (c *Client) DeleteItem(ctx context.Context, id int64) (*model.MessageResponse, error) {
	var out *model.MessageResponse
	err := c.do(ctx, latency.OpDeleteItem, func(ctx context.Context) error {
		var err error
		out, err = c.services.Items.Delete(ctx, id)
		return err
	})
	return out, err
}

// CreateRentalRequest implements client.Client.
func (c *Client) CreateRentalRequest(ctx context.Context, input model.RentalInput) (*model.RentalRequest, error) {
	var out *model.RentalRequest
	err := c.do(ctx, latency.OpCreateRental, func(ctx context.Context) error {
		var err error
		out, err = c.services.Rentals.Create(ctx, input)
		return err
	})
	return out, err
}

// ListMyRentals implements client.Client.
func (c *Client) ListMyRentals(ctx context.Context) ([]model.RentalWithDetails, error) {
	var out []model.RentalWithDetails
	err := c.do(ctx, latency.OpListMyRentals, func(ctx context.Context) error {
		out = c.services.Rentals.ListMine(ctx)
		return nil
	})
	return out, err
}

// ListCategories implements client.Client.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.do(ctx, latency.OpListCategories, func(ctx context.Context) error {
		out = c.services.Catalog.ListCategories(ctx)
		return nil
	})
	return out, err
}

// ListUsers implements client.Client.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, latency.OpListUsers, func(ctx context.Context) error {
		out = c.services.Catalog.ListUsers(ctx)
		return nil
	})
	return out, err
}

// GetUser implements client.Client.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var out *model.User
	err := c.do(ctx, latency.OpGetUser, func(ctx context.Context) error {
		var err error
		out, err = c.services.Catalog.GetUser(ctx, id)
		return err
	})
	return out, err
}
