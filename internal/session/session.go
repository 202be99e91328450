// Package session persists the authenticated actor of this client.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/storage"
)

// Storage keys. They match the keys the browser frontend writes to
// localStorage so a session can be shared across both.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// ErrCorrupt is returned when persisted session state cannot be decoded.
var ErrCorrupt = errors.New("corrupt session state")

// storedUser is the persisted user record.
type storedUser struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Store reads and writes session state in a KV.
type Store struct {
	kv storage.KV
}

// NewStore creates a Store backed by kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Save persists a login result. The user record is written before the token.
func (s *Store) Save(ctx context.Context, resp *model.LoginResponse) error {
	raw, err := json.Marshal(storedUser{
		ID:        resp.UserID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	})
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	if err := s.kv.Set(ctx, TokenKey, resp.Token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

// Current returns the persisted session, or nil when nobody is logged in.
func (s *Store) Current(ctx context.Context) (*model.Session, error) {
	raw, ok, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var u storedUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == 0 {
		return nil, ErrCorrupt
	}

	token, _, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}

	name := (&model.User{FirstName: u.FirstName, LastName: u.LastName}).DisplayName()
	return &model.Session{Token: token, UserID: u.ID, UserName: name}, nil
}

// CurrentUserID returns the logged-in user's id and whether one is set.
func (s *Store) CurrentUserID(ctx context.Context) (int64, bool, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return 0, false, err
	}
	if sess == nil {
		return 0, false, nil
	}
	return sess.UserID, true, nil
}

// Token returns the persisted bearer token, or "" when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	return token, nil
}

// Clear removes all session state.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	if err := s.kv.Remove(ctx, UserKey); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	return nil
}
