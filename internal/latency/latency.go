// Package latency simulates network delay for mock backend operations.
package latency

import (
	"context"
	"time"
)

// Operation names a client operation. The names double as metric labels.
type Operation string

// Operations.
const (
	OpLogin          Operation = "login"
	OpListItems      Operation = "list_items"
	OpListAvailable  Operation = "list_available_items"
	OpSearchItems    Operation = "search_items"
	OpGetItem        Operation = "get_item"
	OpListMyItems    Operation = "list_my_items"
	OpCreateItem     Operation = "create_item"
	OpUpdateItem     Operation = "update_item"
	OpDeleteItem     Operation = "delete_item"
	OpCreateRental   Operation = "create_rental"
	OpListMyRentals  Operation = "list_my_rentals"
	OpListCategories Operation = "list_categories"
	OpListUsers      Operation = "list_users"
	OpGetUser        Operation = "get_user"
)

// Profile maps operations to their base delay.
type Profile map[Operation]time.Duration

// DefaultProfile returns the standard per-operation delays.
func DefaultProfile() Profile {
	return Profile{
		OpLogin:          500 * time.Millisecond,
		OpListItems:      300 * time.Millisecond,
		OpListAvailable:  300 * time.Millisecond,
		OpSearchItems:    300 * time.Millisecond,
		OpGetItem:        200 * time.Millisecond,
		OpListMyItems:    300 * time.Millisecond,
		OpCreateItem:     500 * time.Millisecond,
		OpUpdateItem:     400 * time.Millisecond,
		OpDeleteItem:     350 * time.Millisecond,
		OpCreateRental:   500 * time.Millisecond,
		OpListMyRentals:  300 * time.Millisecond,
		OpListCategories: 200 * time.Millisecond,
		OpListUsers:      200 * time.Millisecond,
		OpGetUser:        200 * time.Millisecond,
	}
}

// Simulator delays callers by the profile delay times a scale factor.
type Simulator struct {
	profile Profile
	scale   float64
}

// New creates a Simulator. A scale of 0 disables delays.
func New(profile Profile, scale float64) *Simulator {
	if profile == nil {
		profile = DefaultProfile()
	}
	if scale < 0 {
		scale = 0
	}
	return &Simulator{profile: profile, scale: scale}
}

// Disabled returns a Simulator that never waits.
func Disabled() *Simulator {
	return New(nil, 0)
}

// Delay returns the scaled delay for op.
func (s *Simulator) Delay(op Operation) time.Duration {
	return time.Duration(float64(s.profile[op]) * s.scale)
}

// Wait blocks for op's delay or until ctx is done, whichever comes first.
func (s *Simulator) Wait(ctx context.Context, op Operation) error {
	d := s.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
