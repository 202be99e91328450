// Package storage provides the durable key-value store that client session
// state is persisted in.
package storage

import (
	"context"
	"fmt"
)

// KV is durable client-side key-value storage.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Open returns the KV named by backend ("memory", "file" or "redis") and a
// function that releases it.
func Open(ctx context.Context, backend, filePath, redisURL string) (KV, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "memory", "":
		return NewMemory(), noop, nil
	case "file":
		return NewFile(filePath), noop, nil
	case "redis":
		r, err := NewRedis(ctx, redisURL, DefaultRedisPrefix, 0)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
