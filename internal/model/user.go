// Package model defines domain entities for the rental marketplace.
package model

import "strings"

// UnknownOwnerName is shown when an item's owner is missing from the user registry.
const UnknownOwnerName = "Unknown User"

// User is a marketplace member. Users come from seed data and are never
// mutated by the client layer.
type User struct {
	ID           int64   `json:"id" yaml:"id"`
	Email        string  `json:"email" yaml:"email"`
	PhoneNumber  string  `json:"phone_number" yaml:"phone_number"`
	FirstName    string  `json:"first_name" yaml:"first_name"`
	LastName     string  `json:"last_name" yaml:"last_name"`
	NickName     *string `json:"nick_name,omitempty" yaml:"nick_name,omitempty"`
	PasswordHash string  `json:"-" yaml:"password_hash,omitempty"`
}

// DisplayName returns "first last", trimmed when either part is empty.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Category groups items. Seed data only.
type Category struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
