package seed

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/testutil"
)

func TestDefault_Fixture(t *testing.T) {
	t.Parallel()
	ds := Default()
	require.NoError(t, ds.Validate())

	byID := make(map[int64]model.Item)
	for _, it := range ds.Items {
		byID[it.ID] = it
	}
	assert.Equal(t, int64(1), byID[1].OwnerID, "user 1 owns item 1")
	assert.True(t, byID[2].Available)
	assert.NotEqual(t, int64(1), byID[2].OwnerID)
	assert.False(t, byID[3].Available, "item 3 starts rented out")
}

func TestDefault_FreshCopies(t *testing.T) {
	t.Parallel()
	a := Default()
	a.Items[0].Name = "changed"
	assert.NotEqual(t, "changed", Default().Items[0].Name)
}

func TestValidate_Duplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ds   Dataset
	}{
		{"duplicate user", Dataset{Users: []model.User{{ID: 1}, {ID: 1}}}},
		{"zero category", Dataset{Categories: []model.Category{{ID: 0}}}},
		{"duplicate item", Dataset{Items: []model.Item{{ID: 2}, {ID: 2}}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.ds.Validate(), model.ErrValidation)
		})
	}
}

const sampleYAML = `
users:
  - id: 1
    email: ann@example.com
    phone_number: "555-0000"
    first_name: Ann
    last_name: Lee
categories:
  - id: 1
    name: Tools
    description: Hand tools
items:
  - id: 10
    name: Ladder
    description: Six foot ladder
    category_id: 1
    owner_id: 1
    price: 1200
    quantity: 1
    available: true
    date_listed: 2024-02-01T00:00:00Z
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	ds, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, ds.Users, 1)
	require.Len(t, ds.Items, 1)
	assert.Equal(t, "Ann Lee", ds.Users[0].DisplayName())
	assert.Equal(t, int64(1200), ds.Items[0].Price)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ds.Items[0].DateListed.UTC())
}

func TestParseYAML_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseYAML([]byte("users:\n  - id: 1\n    surname: x\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = ParseYAML(nil)
	assert.Error(t, err)
}

func TestWriteYAML_ReadableAsSeedFile(t *testing.T) {
	t.Parallel()

	ds := Default()
	require.NoError(t, ds.HashMissingPasswords("hunter2"))

	var buf bytes.Buffer
	require.NoError(t, ds.WriteYAML(&buf))

	back, err := ParseYAML(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	require.Len(t, back.Users, len(ds.Users))
	require.Len(t, back.Items, len(ds.Items))

	ok, err := auth.VerifyPassword("hunter2", back.Users[0].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok, "hash survives the file round trip")
	assert.Equal(t, ds.Items[2].Available, back.Items[2].Available)
	assert.Equal(t, "jd", *back.Users[1].NickName)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	ds, err := Load(context.Background(), Options{Source: SourceFile, File: path})
	require.NoError(t, err)
	assert.Equal(t, int64(10), ds.Items[0].ID)

	_, err = Load(context.Background(), Options{Source: SourceFile, File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), Options{Source: "mongo"})
	assert.Error(t, err)
}

func TestLoad_HashPasswords(t *testing.T) {
	t.Parallel()

	ds, err := Load(context.Background(), Options{Source: SourceBuiltin, HashPasswords: true})
	require.NoError(t, err)
	for _, u := range ds.Users {
		ok, err := auth.VerifyPassword(DefaultPassword, u.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok, "user %d", u.ID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a := Generate(42, 5, 20)
	b := Generate(42, 5, 20)
	assert.Equal(t, a, b)
	require.NoError(t, a.Validate())

	assert.Len(t, a.Users, 5)
	assert.Len(t, a.Items, 20)
	emails := make(map[string]bool)
	for _, u := range a.Users {
		assert.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true
	}
	for _, it := range a.Items {
		assert.True(t, it.OwnerID >= 1 && it.OwnerID <= 5)
		assert.Zero(t, it.Price%100, "prices are whole major units")
	}
}

func TestLoadPostgres(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT u_id, u_email").WillReturnRows(
		sqlmock.NewRows([]string{"u_id", "u_email", "u_phone_number", "u_first_name", "u_last_name", "u_nick_name", "u_password"}).
			AddRow(1, "a@example.com", "555", "Ann", "Lee", nil, "plaintext").
			AddRow(2, "b@example.com", "556", "Bo", "Kim", "bk", "$argon2id$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"),
	)
	mock.ExpectQuery("SELECT c_id, c_name, c_description FROM categories").WillReturnRows(
		sqlmock.NewRows([]string{"c_id", "c_name", "c_description"}).AddRow(1, "Tools", nil),
	)
	mock.ExpectQuery("SELECT i_id, i_name").WillReturnRows(
		sqlmock.NewRows([]string{"i_id", "i_name", "i_description", "i_image", "c_id", "owner_id", "i_price", "i_date_listed", "i_quantity", "i_available"}).
			AddRow(1, "Drill", "18V", []byte("drill.png"), 1, 1, 1500, listed, 1, true).
			AddRow(2, "Tent", nil, nil, 1, 2, 2500, listed, 1, false),
	)

	ds, err := LoadPostgres(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, ds.Users, 2)
	assert.Nil(t, ds.Users[0].NickName)
	assert.Empty(t, ds.Users[0].PasswordHash, "non-argon2 passwords are dropped")
	require.NotNil(t, ds.Users[1].NickName)
	assert.Equal(t, "bk", *ds.Users[1].NickName)
	assert.True(t, strings.HasPrefix(ds.Users[1].PasswordHash, "$argon2id$"))

	require.Len(t, ds.Items, 2)
	require.NotNil(t, ds.Items[0].Image)
	assert.Equal(t, "drill.png", *ds.Items[0].Image)
	assert.Nil(t, ds.Items[1].Image)
	assert.False(t, ds.Items[1].Available)
	assert.Equal(t, "", ds.Categories[0].Description)
}

func TestLoadPostgres_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("relation \"users\" does not exist")
	mock.ExpectQuery("SELECT u_id").WillReturnError(boom)

	_, err = LoadPostgres(context.Background(), db)
	assert.ErrorIs(t, err, boom)
}

func TestOpenPostgres_Integration(t *testing.T) {
	dsn := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	require.NoError(t, err)
	defer func() { _ = unlock() }()

	want := Default()
	require.NoError(t, testutil.ResetMarketplaceSchema(ctx, pool))
	require.NoError(t, testutil.InsertMarketplaceRows(ctx, pool, want.Users, want.Categories, want.Items))

	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			ds, err := OpenPostgres(ctx, driver, dsn)
			require.NoError(t, err)
			require.NoError(t, ds.Validate())
			assert.Len(t, ds.Users, len(want.Users))
			assert.Len(t, ds.Items, len(want.Items))
			assert.Equal(t, want.Items[2].Available, ds.Items[2].Available)
		})
	}
}
