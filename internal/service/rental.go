package service

import (
	"context"
	"log/slog"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/store"
)

// RentalService handles rental requests.
type RentalService struct {
	store   *store.Store
	persist bool
	metrics metrics.Recorder
}

// NewRentalService creates a new RentalService.
func NewRentalService(st *store.Store, persist bool, recorder metrics.Recorder) *RentalService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RentalService{store: st, persist: persist, metrics: recorder}
}

// Create requests a rental of an available item. The item becomes
// unavailable in the same step. A missing or unavailable item is reported
// before the dates and price are validated.
func (s *RentalService) Create(ctx context.Context, input model.RentalInput) (*model.RentalRequest, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, model.ErrUnauthenticated
	}
	rental, err := s.store.ReserveItem(model.RentalRequest{
		ItemID:     input.ItemID,
		RenterID:   userID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Status:     model.RentalStatusPending,
		TotalPrice: input.TotalPrice,
	}, s.persist, func(*model.Item) error {
		return input.Validate()
	})
	if err != nil {
		s.metrics.IncRentalRequested(model.ErrorCode(err))
		return nil, err
	}

	s.metrics.IncRentalRequested(metrics.OutcomeSuccess)
	slog.InfoContext(ctx, "rental_requested",
		"rental_id", rental.ID,
		"item_id", rental.ItemID,
		"renter_id", userID,
		"persisted", s.persist,
	)
	return &rental, nil
}

// ListMine returns the acting user's rentals. Unless rentals are persisted
// the result is always empty.
func (s *RentalService) ListMine(ctx context.Context) []model.RentalWithDetails {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok || !s.persist {
		return []model.RentalWithDetails{}
	}
	return s.store.RentalsByRenter(userID)
}
