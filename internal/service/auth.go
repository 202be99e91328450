package service

import (
	"context"
	"log/slog"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/store"
)

// AuthService resolves login credentials to a user.
type AuthService struct {
	store   *store.Store
	verify  bool
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.Store, verify bool, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{store: st, verify: verify, metrics: recorder}
}

// Authenticate returns the user with email. The password is only checked when
// verification is enabled and the user has a stored hash.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, ok := s.store.UserByEmail(email)
	if !ok {
		s.metrics.IncLogin(model.CodeInvalidCredentials)
		return nil, model.ErrInvalidCredentials
	}

	if s.verify && user.PasswordHash != "" {
		match, err := auth.VerifyPassword(password, user.PasswordHash)
		if err != nil {
			slog.WarnContext(ctx, "password_hash_unreadable", "user_id", user.ID, "error", err)
		}
		if !match {
			s.metrics.IncLogin(model.CodeInvalidCredentials)
			return nil, model.ErrInvalidCredentials
		}
	}

	s.metrics.IncLogin(metrics.OutcomeSuccess)
	slog.InfoContext(ctx, "user_logged_in", "user_id", user.ID)
	return &user, nil
}
