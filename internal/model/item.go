package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Item is a rentable listing owned by exactly one user.
// Price is stored in minor currency units (cents).
type Item struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	CategoryID  int64     `json:"category_id" yaml:"category_id"`
	OwnerID     int64     `json:"owner_id" yaml:"owner_id"`
	Price       int64     `json:"price" yaml:"price"`
	Quantity    int       `json:"quantity" yaml:"quantity"`
	Available   bool      `json:"available" yaml:"available"`
	Image       *string   `json:"image,omitempty" yaml:"image,omitempty"`
	DateListed  time.Time `json:"date_listed" yaml:"date_listed"`
}

// Clone returns a deep copy so callers can never alias registry state.
func (i Item) Clone() Item {
	if i.Image != nil {
		img := *i.Image
		i.Image = &img
	}
	return i
}

// WithOwner projects the item onto the listing shape used by browse and search.
func (i Item) WithOwner(ownerName string) ItemWithOwner {
	c := i.Clone()
	return ItemWithOwner{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		OwnerID:     c.OwnerID,
		OwnerName:   ownerName,
		Available:   c.Available,
		Image:       c.Image,
	}
}

// ItemWithOwner is an item joined with its owner's display name.
type ItemWithOwner struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	OwnerID     int64   `json:"owner_id"`
	OwnerName   string  `json:"owner_name"`
	Available   bool    `json:"available"`
	Image       *string `json:"image,omitempty"`
}

// ItemInput is the payload for creating an item. Owner, id and listing date are
// assigned by the backend and cannot be supplied.
type ItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"category_id"`
	Price       int64   `json:"price"`
	Quantity    int     `json:"quantity,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate checks the input at the boundary.
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

// ItemPatch is a partial update. Only non-nil fields are applied. There is no
// way to express a new id, owner or listing date.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate checks the patch at the boundary.
func (p ItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

// Apply copies the set fields onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.CategoryID != nil {
		item.CategoryID = *p.CategoryID
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	if p.Image != nil {
		img := *p.Image
		item.Image = &img
	}
}

// SearchParams filters items. Every field is optional; set filters combine with AND.
// MinPrice and MaxPrice are in major currency units.
type SearchParams struct {
	Query      string   `json:"query,omitempty"`
	CategoryID *int64   `json:"category_id,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	Available  *bool    `json:"available,omitempty"`
}

// ToMinorUnits converts a major-unit amount to minor units.
func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// Matches reports whether item passes every set filter.
func (s SearchParams) Matches(item *Item) bool {
	if s.Available != nil && item.Available != *s.Available {
		return false
	}
	if s.Query != "" {
		q := strings.ToLower(s.Query)
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			return false
		}
	}
	if s.CategoryID != nil && item.CategoryID != *s.CategoryID {
		return false
	}
	if s.MinPrice != nil && item.Price < ToMinorUnits(*s.MinPrice) {
		return false
	}
	if s.MaxPrice != nil && item.Price > ToMinorUnits(*s.MaxPrice) {
		return false
	}
	return true
}
