package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rentloop/rentloop/internal/auth"
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/store"
)

// DeleteItemMessage confirms a successful delete.
const DeleteItemMessage = "Item deleted successfully"

// ItemService handles item queries and mutations.
type ItemService struct {
	store   *store.Store
	metrics metrics.Recorder
	now     func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(st *store.Store, recorder metrics.Recorder) *ItemService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ItemService{store: st, metrics: recorder, now: time.Now}
}

// ListAll returns every item in registry order.
func (s *ItemService) ListAll(ctx context.Context) []model.Item {
	return s.store.Items(nil)
}

// ListAvailable returns available items with owner names.
func (s *ItemService) ListAvailable(ctx context.Context) []model.ItemWithOwner {
	return s.store.ItemsWithOwner(func(it *model.Item) bool { return it.Available })
}

// Search returns items matching every set filter in params, in registry order.
func (s *ItemService) Search(ctx context.Context, params model.SearchParams) []model.ItemWithOwner {
	return s.store.ItemsWithOwner(params.Matches)
}

// Get returns the item with id.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, ok := s.store.ItemByID(id)
	if !ok {
		return nil, model.NotFoundf("item %d", id)
	}
	return &item, nil
}

// ListMine returns the acting user's items. Without an identity the result
// is empty.
func (s *ItemService) ListMine(ctx context.Context) []model.Item {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return []model.Item{}
	}
	return s.store.Items(func(it *model.Item) bool { return it.OwnerID == userID })
}

// Create lists a new item owned by the acting user.
func (s *ItemService) Create(ctx context.Context, input model.ItemInput) (*model.Item, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, model.ErrUnauthenticated
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := s.store.InsertItem(model.Item{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		OwnerID:     userID,
		Price:       input.Price,
		Quantity:    quantity,
		Available:   available,
		Image:       input.Image,
		DateListed:  s.now().UTC(),
	})

	s.metrics.IncItemCreated()
	slog.InfoContext(ctx, "item_created", "item_id", item.ID, "owner_id", userID)
	return &item, nil
}

// Update applies patch to an item owned by the acting user. The item's id,
// owner and listing date never change.
func (s *ItemService) Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	userID, _ := auth.UserIDFromContext(ctx)

	item, err := s.store.UpdateItem(id, func(it *model.Item) error {
		if it.OwnerID != userID {
			return model.ErrForbidden
		}
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(it)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncItemUpdated()
	slog.InfoContext(ctx, "item_updated", "item_id", id, "owner_id", userID)
	return &item, nil
}

// Delete removes an item owned by the acting user.
func (s *ItemService) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	userID, _ := auth.UserIDFromContext(ctx)

	err := s.store.DeleteItem(id, func(it *model.Item) error {
		if it.OwnerID != userID {
			return model.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncItemDeleted()
	slog.InfoContext(ctx, "item_deleted", "item_id", id, "owner_id", userID)
	return &model.MessageResponse{Message: DeleteItemMessage}, nil
}
