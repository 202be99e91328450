package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"

	"github.com/rentloop/rentloop/internal/model"
)

// Queries against the marketplace schema (users, categories, items).
const (
	selectUsers = `SELECT u_id, u_email, u_phone_number, u_first_name, u_last_name, u_nick_name, u_password
		FROM users ORDER BY u_id`
	selectCategories = `SELECT c_id, c_name, c_description FROM categories ORDER BY c_id`
	selectItems      = `SELECT i_id, i_name, i_description, i_image, c_id, owner_id, i_price, i_date_listed, i_quantity, i_available
		FROM items ORDER BY i_id`
)

// OpenPostgres connects with driver ("pgx" or "postgres") and snapshots the
// database into a Dataset.
func OpenPostgres(ctx context.Context, driver, dsn string) (*Dataset, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	if driver == "" {
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return LoadPostgres(ctx, db)
}

// LoadPostgres reads users, categories and items from db.
func LoadPostgres(ctx context.Context, db *sql.DB) (*Dataset, error) {
	ds := &Dataset{}

	users, err := db.QueryContext(ctx, selectUsers)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer users.Close()
	for users.Next() {
		var (
			u        model.User
			nick     sql.NullString
			password sql.NullString
		)
		if err := users.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.FirstName, &u.LastName, &nick, &password); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if nick.Valid {
			u.NickName = &nick.String
		}
		// Only argon2id hashes are verifiable; other formats fall back to
		// the default password.
		if strings.HasPrefix(password.String, "$argon2id$") {
			u.PasswordHash = password.String
		}
		ds.Users = append(ds.Users, u)
	}
	if err := users.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	cats, err := db.QueryContext(ctx, selectCategories)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer cats.Close()
	for cats.Next() {
		var (
			c    model.Category
			desc sql.NullString
		)
		if err := cats.Scan(&c.ID, &c.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Description = desc.String
		ds.Categories = append(ds.Categories, c)
	}
	if err := cats.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	items, err := db.QueryContext(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer items.Close()
	for items.Next() {
		var (
			it    model.Item
			desc  sql.NullString
			image []byte
		)
		if err := items.Scan(&it.ID, &it.Name, &desc, &image, &it.CategoryID, &it.OwnerID,
			&it.Price, &it.DateListed, &it.Quantity, &it.Available); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Description = desc.String
		if image != nil {
			img := string(image)
			it.Image = &img
		}
		ds.Items = append(ds.Items, it)
	}
	if err := items.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return ds, nil
}
