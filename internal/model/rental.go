package model

import "fmt"

// RentalStatus is the lifecycle state of a rental request.
type RentalStatus string

// RentalStatusPending is the only status produced by the client layer.
const RentalStatusPending RentalStatus = "pending"

// RentalRequest asks to rent one item for a date range.
type RentalRequest struct {
	ID         int64        `json:"id"`
	ItemID     int64        `json:"item_id"`
	RenterID   int64        `json:"renter_id"`
	StartDate  Date         `json:"start_date"`
	EndDate    Date         `json:"end_date"`
	Status     RentalStatus `json:"status"`
	TotalPrice int64        `json:"total_price"`
}

// RentalInput is the caller-supplied part of a rental request.
type RentalInput struct {
	ItemID     int64 `json:"item_id"`
	StartDate  Date  `json:"start_date"`
	EndDate    Date  `json:"end_date"`
	TotalPrice int64 `json:"total_price"`
}

// Validate checks the dates and price. The item id is resolved against the
// registry, which reports unknown ids as not found.
func (in RentalInput) Validate() error {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if in.EndDate.Before(in.StartDate.Time) {
		return fmt.Errorf("%w: end_date is before start_date", ErrValidation)
	}
	if in.TotalPrice < 0 {
		return fmt.Errorf("%w: total_price cannot be negative", ErrValidation)
	}
	return nil
}

// RentalWithDetails is a rental joined with its item and the item's owner.
type RentalWithDetails struct {
	ID          int64        `json:"id"`
	ItemID      int64        `json:"item_id"`
	ItemName    string       `json:"item_name"`
	Description string       `json:"description"`
	StartDate   Date         `json:"start_date"`
	EndDate     Date         `json:"end_date"`
	Status      RentalStatus `json:"status"`
	TotalPrice  int64        `json:"total_price"`
	OwnerName   string       `json:"owner_name"`
}
