// Package service provides business logic for the application.
package service

import (
	"github.com/rentloop/rentloop/internal/metrics"
	"github.com/rentloop/rentloop/internal/store"
)

// Options toggles behavior that differs from the reference mock backend.
type Options struct {
	// PersistRentals appends created rentals to the rental registry so
	// ListMine returns them.
	PersistRentals bool
	// VerifyCredentials checks passwords against seeded argon2id hashes.
	VerifyCredentials bool
}

// Services bundles every service over one store.
type Services struct {
	Auth    *AuthService
	Items   *ItemService
	Rentals *RentalService
	Catalog *CatalogService
}

// New wires all services to st.
func New(st *store.Store, opts Options, recorder metrics.Recorder) *Services {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Services{
		Auth:    NewAuthService(st, opts.VerifyCredentials, recorder),
		Items:   NewItemService(st, recorder),
		Rentals: NewRentalService(st, opts.PersistRentals, recorder),
		Catalog: NewCatalogService(st),
	}
}
