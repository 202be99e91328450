package handler

import (
	"log/slog"
	"net/http"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/service"
)

// AuthHandler handles login.
type AuthHandler struct {
	svc    *service.AuthService
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens, logger: logger}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Token:     token,
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
