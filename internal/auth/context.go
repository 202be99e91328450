// Package auth carries the acting user's identity and mints and checks the
// credentials that establish it.
package auth

import (
	"context"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// identityKey is the context key for storing Identity.
	identityKey contextKey = "identity"
)

// Identity is the authenticated actor for one operation.
type Identity struct {
	UserID int64
	Token  string
}

// ContextWithIdentity adds Identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves Identity from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// UserIDFromContext returns the acting user's id and whether one is set.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id := IdentityFromContext(ctx)
	if id == nil || id.UserID == 0 {
		return 0, false
	}
	return id.UserID, true
}
