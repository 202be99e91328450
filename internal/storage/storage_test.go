package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop/internal/testutil"
)

// exerciseKV runs the shared KV contract against a backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report absent")

	require.NoError(t, kv.Set(ctx, "token", "abc"))
	v, ok, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, kv.Set(ctx, "token", "def"))
	v, _, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "def", v, "set should overwrite")

	require.NoError(t, kv.Remove(ctx, "token"))
	_, ok, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Remove(ctx, "never-set"), "removing a missing key is not an error")
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseKV(t, NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()
	exerciseKV(t, NewFile(filepath.Join(t.TempDir(), "session.json")))
}

func TestFile_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	require.NoError(t, NewFile(path).Set(ctx, "user", `{"id":1}`))

	v, ok, err := NewFile(path).Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestFile_CorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFile(path).Get(context.Background(), "token")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	t.Parallel()

	_, client := testutil.NewMiniRedis(t)
	exerciseKV(t, NewRedisFromClient(client, "", 0))
}

func TestRedis_Integration(t *testing.T) {
	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	ctx := context.Background()

	kv, err := NewRedis(ctx, redisURL, "rentloop:test:", time.Minute)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer func() { _ = client.Close() }()
	require.NoError(t, testutil.FlushRedis(ctx, client))

	require.NoError(t, kv.Ping(ctx))
	exerciseKV(t, kv)
}

func TestRedis_PrefixAndTTL(t *testing.T) {
	t.Parallel()

	mr, client := testutil.NewMiniRedis(t)
	kv := NewRedisFromClient(client, "test:", time.Hour)
	require.NoError(t, kv.Set(context.Background(), "token", "abc"))

	assert.True(t, mr.Exists("test:token"))
	assert.Equal(t, time.Hour, mr.TTL("test:token"))
}

func TestNewRedis_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(context.Background(), "not-a-url://", "", 0)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	kv, closeFn, err := Open(ctx, "memory", "", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)
	assert.NoError(t, closeFn())

	kv, _, err = Open(ctx, "file", filepath.Join(t.TempDir(), "s.json"), "")
	require.NoError(t, err)
	assert.IsType(t, &File{}, kv)

	mr := miniredis.RunT(t)
	kv, closeFn, err = Open(ctx, "redis", "", "redis://"+mr.Addr())
	require.NoError(t, err)
	exerciseKV(t, kv)
	assert.NoError(t, closeFn())

	_, _, err = Open(ctx, "s3", "", "")
	assert.Error(t, err)
}
