package handler

import (
	"log/slog"
	"net/http"

	"github.com/rentloop/rentloop/internal/handler/dto"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/service"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	svc    *service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, logger: logger}
}

// List handles GET /api/items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListAll(r.Context()))
}

// ListAvailable handles GET /api/items/available.
func (h *ItemHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListAvailable(r.Context()))
}

// Search handles GET /api/items/search.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := dto.ParseSearchQuery(r.URL.Query())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Search(r.Context(), params))
}

// ListMine handles GET /api/items/my.
func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListMine(r.Context()))
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/items and POST /api/create-item.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	item, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	// id, owner_id and date_listed in the body have no field to land in.
	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	item, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	resp, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
