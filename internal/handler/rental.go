package handler

import (
	"log/slog"
	"net/http"

	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/service"
)

// RentalHandler handles rental requests.
type RentalHandler struct {
	svc    *service.RentalService
	logger *slog.Logger
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(svc *service.RentalService, logger *slog.Logger) *RentalHandler {
	return &RentalHandler{svc: svc, logger: logger}
}

// Create handles POST /api/rentals.
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.RentalInput
	if err := decodeJSON(r, &input); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	rental, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// ListMine handles GET /api/rentals/my.
func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListMine(r.Context()))
}
