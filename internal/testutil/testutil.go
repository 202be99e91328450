package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rentloop/rentloop/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetMarketplaceSchema drops and recreates the users, categories and items
// tables from the migrations directory.
func ResetMarketplaceSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for _, name := range []string{"000001_marketplace.down.sql", "000001_marketplace.up.sql"} {
		sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// InsertMarketplaceRows writes users, categories and items with their ids.
func InsertMarketplaceRows(ctx context.Context, pool *pgxpool.Pool, users []model.User, cats []model.Category, items []model.Item) error {
	for _, u := range users {
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (u_id, u_email, u_phone_number, u_first_name, u_last_name, u_nick_name, u_password)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, u.Email, u.PhoneNumber, u.FirstName, u.LastName, u.NickName, u.PasswordHash,
		); err != nil {
			return fmt.Errorf("insert user %d: %w", u.ID, err)
		}
	}
	for _, c := range cats {
		if _, err := pool.Exec(ctx,
			`INSERT INTO categories (c_id, c_name, c_description) VALUES ($1, $2, $3)`,
			c.ID, c.Name, c.Description,
		); err != nil {
			return fmt.Errorf("insert category %d: %w", c.ID, err)
		}
	}
	for _, it := range items {
		var image []byte
		if it.Image != nil {
			image = []byte(*it.Image)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO items (i_id, i_name, i_description, i_image, c_id, owner_id, i_price, i_date_listed, i_quantity, i_available)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, it.Name, it.Description, image, it.CategoryID, it.OwnerID, it.Price, it.DateListed, it.Quantity, it.Available,
		); err != nil {
			return fmt.Errorf("insert item %d: %w", it.ID, err)
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// NewMiniRedis starts an in-process Redis and returns a client for it. Both
// are cleaned up when the test ends.
func NewMiniRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// ProjectRoot returns the repository root based on this file location.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with sensible defaults.
func NewTestUser(id int64, first, last string) model.User {
	return model.User{
		ID:          id,
		Email:       fmt.Sprintf("user%d@example.com", id),
		PhoneNumber: fmt.Sprintf("555-%04d", id),
		FirstName:   first,
		LastName:    last,
	}
}

// NewTestItem creates an available item owned by ownerID.
func NewTestItem(id, ownerID int64, name string, price int64) model.Item {
	return model.Item{
		ID:          id,
		Name:        name,
		Description: name + " for rent",
		CategoryID:  1,
		OwnerID:     ownerID,
		Price:       price,
		Quantity:    1,
		Available:   true,
		DateListed:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
