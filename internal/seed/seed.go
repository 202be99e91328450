// Package seed supplies the initial Users, Categories and Items the mock
// backend starts with.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/model"
)

// Source names a seed provider.
type Source string

// Seed sources.
const (
	SourceBuiltin  Source = "builtin"
	SourceFile     Source = "file"
	SourceFake     Source = "fake"
	SourcePostgres Source = "postgres"
)

// DefaultPassword is hashed onto seed users that carry no password hash when
// credential verification is enabled.
const DefaultPassword = "password"

// Dataset is one snapshot of seed data.
type Dataset struct {
	Users      []model.User     `json:"users" yaml:"users"`
	Categories []model.Category `json:"categories" yaml:"categories"`
	Items      []model.Item     `json:"items" yaml:"items"`
}

// Options selects and parameterizes a seed source.
type Options struct {
	Source         Source
	File           string
	FakeUsers      int
	FakeItems      int
	FakeSeed       int64
	DatabaseURL    string
	DatabaseDriver string
	// HashPasswords fills PasswordHash for users that have none.
	HashPasswords bool
}

// Load builds a Dataset from the configured source.
func Load(ctx context.Context, opts Options) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch opts.Source {
	case SourceBuiltin, "":
		ds = Default()
	case SourceFile:
		ds, err = LoadFile(opts.File)
	case SourceFake:
		ds = Generate(opts.FakeSeed, opts.FakeUsers, opts.FakeItems)
	case SourcePostgres:
		ds, err = OpenPostgres(ctx, opts.DatabaseDriver, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown seed source %q", opts.Source)
	}
	if err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if opts.HashPasswords {
		if err := ds.HashMissingPasswords(DefaultPassword); err != nil {
			return nil, err
		}
	}

	slog.Info("seed_loaded",
		"source", string(opts.Source),
		"users", len(ds.Users),
		"categories", len(ds.Categories),
		"items", len(ds.Items),
	)
	return ds, nil
}

// Validate checks that ids are positive and unique per collection.
func (d *Dataset) Validate() error {
	users := make(map[int64]bool, len(d.Users))
	for _, u := range d.Users {
		if u.ID <= 0 || users[u.ID] {
			return fmt.Errorf("%w: bad or duplicate user id %d", model.ErrValidation, u.ID)
		}
		users[u.ID] = true
	}
	cats := make(map[int64]bool, len(d.Categories))
	for _, c := range d.Categories {
		if c.ID <= 0 || cats[c.ID] {
			return fmt.Errorf("%w: bad or duplicate category id %d", model.ErrValidation, c.ID)
		}
		cats[c.ID] = true
	}
	items := make(map[int64]bool, len(d.Items))
	for _, it := range d.Items {
		if it.ID <= 0 || items[it.ID] {
			return fmt.Errorf("%w: bad or duplicate item id %d", model.ErrValidation, it.ID)
		}
		items[it.ID] = true
	}
	return nil
}

// HashMissingPasswords sets an argon2id hash of password on every user
// without one.
func (d *Dataset) HashMissingPasswords(password string) error {
	for i := range d.Users {
		if d.Users[i].PasswordHash != "" {
			continue
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password for user %d: %w", d.Users[i].ID, err)
		}
		d.Users[i].PasswordHash = hash
	}
	return nil
}

func strPtr(s string) *string { return &s }

// Default returns the builtin fixture. User 1 owns item 1, item 2 is owned by
// user 2 and available, item 3 is already rented out.
func Default() *Dataset {
	listed := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return &Dataset{
		Users: []model.User{
			{ID: 1, Email: "john.smith@example.com", PhoneNumber: "555-0101", FirstName: "John", LastName: "Smith"},
			{ID: 2, Email: "jane.doe@example.com", PhoneNumber: "555-0102", FirstName: "Jane", LastName: "Doe", NickName: strPtr("jd")},
			{ID: 3, Email: "sam.lee@example.com", PhoneNumber: "555-0103", FirstName: "Sam", LastName: "Lee"},
		},
		Categories: []model.Category{
			{ID: 1, Name: "Tools", Description: "Power tools and hand tools"},
			{ID: 2, Name: "Outdoors", Description: "Camping, hiking and water sports"},
			{ID: 3, Name: "Electronics", Description: "Cameras, speakers and projectors"},
			{ID: 4, Name: "Party", Description: "Tables, chairs and decorations"},
		},
		Items: []model.Item{
			{ID: 1, Name: "Cordless Drill", Description: "18V drill with two batteries", CategoryID: 1, OwnerID: 1, Price: 1500, Quantity: 1, Available: true, DateListed: listed},
			{ID: 2, Name: "Camping Tent", Description: "Four person dome tent", CategoryID: 2, OwnerID: 2, Price: 2500, Quantity: 1, Available: true, DateListed: listed.AddDate(0, 0, 1)},
			{ID: 3, Name: "Kayak", Description: "Single seat sit-on-top kayak", CategoryID: 2, OwnerID: 3, Price: 4000, Quantity: 1, Available: false, DateListed: listed.AddDate(0, 0, 2)},
			{ID: 4, Name: "DSLR Camera", Description: "24MP camera with 18-55mm lens", CategoryID: 3, OwnerID: 1, Price: 3500, Quantity: 1, Available: true, DateListed: listed.AddDate(0, 0, 3)},
			{ID: 5, Name: "Folding Tables", Description: "Set of two six foot tables", CategoryID: 4, OwnerID: 3, Price: 800, Quantity: 2, Available: true, DateListed: listed.AddDate(0, 0, 4)},
			{ID: 6, Name: "Bluetooth Speaker", Description: "Portable waterproof speaker", CategoryID: 3, OwnerID: 2, Price: 900, Quantity: 1, Available: true, DateListed: listed.AddDate(0, 0, 5)},
		},
	}
}
