package service

import (
	"context"

	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/store"
)

// CatalogService serves the read-only seed registries.
type CatalogService struct {
	store *store.Store
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) []model.Category {
	return s.store.Categories()
}

// ListUsers returns every user.
func (s *CatalogService) ListUsers(ctx context.Context) []model.User {
	return s.store.Users()
}

// RegistryStats holds registry sizes.
type RegistryStats struct {
	Users      int
	Categories int
	Items      int
	Rentals    int
}

// Stats reports the current registry sizes.
func (s *CatalogService) Stats() RegistryStats {
	users, categories, items, rentals := s.store.Counts()
	return RegistryStats{Users: users, Categories: categories, Items: items, Rentals: rentals}
}

// GetUser returns the user with id.
func (s *CatalogService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, ok := s.store.UserByID(id)
	if !ok {
		return nil, model.NotFoundf("user %d", id)
	}
	return &user, nil
}
