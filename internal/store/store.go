// Package store holds the in-memory entity registries of the mock backend.
package store

import (
	"sort"
	"sync"

	"github.com/rentloop/rentloop/internal/model"
)

// Store owns the Users, Categories, Items and Rentals registries and their id
// generators. All access goes through one mutex; every method that reads then
// writes does so inside a single critical section.
type Store struct {
	mu         sync.Mutex
	users      []model.User
	categories []model.Category
	items      []model.Item
	rentals    []model.RentalRequest

	nextItemID   int64
	nextRentalID int64
}

// New creates a Store seeded with copies of the given collections. Id
// generators start above the largest seeded id.
func New(users []model.User, categories []model.Category, items []model.Item) *Store {
	s := &Store{
		users:        append([]model.User(nil), users...),
		categories:   append([]model.Category(nil), categories...),
		items:        make([]model.Item, 0, len(items)),
		nextItemID:   1,
		nextRentalID: 1,
	}
	for _, it := range items {
		s.items = append(s.items, it.Clone())
		if it.ID >= s.nextItemID {
			s.nextItemID = it.ID + 1
		}
	}
	return s
}

// Users returns a copy of the user registry.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// UserByID returns the user with id.
func (s *Store) UserByID(id int64) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByID(id)
}

// UserByEmail returns the first user with email.
func (s *Store) UserByEmail(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

// OwnerName returns the display name for userID, or model.UnknownOwnerName.
func (s *Store) OwnerName(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerName(userID)
}

// Categories returns a copy of the category registry.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Items returns copies of the items for which keep returns true, in
// registry order. A nil keep selects every item.
func (s *Store) Items(keep func(*model.Item) bool) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, 0, len(s.items))
	for i := range s.items {
		if keep == nil || keep(&s.items[i]) {
			out = append(out, s.items[i].Clone())
		}
	}
	return out
}

// ItemsWithOwner is Items projected with owner names, read under one lock.
func (s *Store) ItemsWithOwner(keep func(*model.Item) bool) []model.ItemWithOwner {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ItemWithOwner, 0, len(s.items))
	for i := range s.items {
		if keep == nil || keep(&s.items[i]) {
			out = append(out, s.items[i].WithOwner(s.ownerName(s.items[i].OwnerID)))
		}
	}
	return out
}

// ItemByID returns a copy of the item with id.
func (s *Store) ItemByID(id int64) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx].Clone(), true
}

// InsertItem assigns the next item id to item, appends it and returns a copy.
func (s *Store) InsertItem(item model.Item) model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextItemID
	s.nextItemID++
	s.items = append(s.items, item.Clone())
	return item.Clone()
}

// UpdateItem runs fn on the stored item with id. fn may reject the update by
// returning an error, in which case the item is left untouched. The id, owner
// and listing date are restored after fn returns.
func (s *Store) UpdateItem(id int64, fn func(*model.Item) error) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(id)
	if idx < 0 {
		return model.Item{}, model.NotFoundf("item %d", id)
	}

	working := s.items[idx].Clone()
	if err := fn(&working); err != nil {
		return model.Item{}, err
	}
	orig := s.items[idx]
	working.ID = orig.ID
	working.OwnerID = orig.OwnerID
	working.DateListed = orig.DateListed
	s.items[idx] = working
	return working.Clone(), nil
}

// DeleteItem removes the item with id once check accepts it.
func (s *Store) DeleteItem(id int64, check func(*model.Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(id)
	if idx < 0 {
		return model.NotFoundf("item %d", id)
	}
	if check != nil {
		if err := check(&s.items[idx]); err != nil {
			return err
		}
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// ReserveItem marks the item unavailable and assigns a rental id. The
// availability check and the flip happen under the same lock. Item existence
// and availability are checked before check, which may be nil. When persist
// is set the rental is also appended to the rental registry.
func (s *Store) ReserveItem(rental model.RentalRequest, persist bool, check func(*model.Item) error) (model.RentalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(rental.ItemID)
	if idx < 0 {
		return model.RentalRequest{}, model.NotFoundf("item %d", rental.ItemID)
	}
	if !s.items[idx].Available {
		return model.RentalRequest{}, model.ErrUnavailable
	}
	if check != nil {
		if err := check(&s.items[idx]); err != nil {
			return model.RentalRequest{}, err
		}
	}

	s.items[idx].Available = false
	rental.ID = s.nextRentalID
	s.nextRentalID++
	if persist {
		s.rentals = append(s.rentals, rental)
	}
	return rental, nil
}

// RentalsByRenter returns the renter's rentals joined with item and owner,
// newest start date first. Rentals whose item has since been deleted are skipped.
func (s *Store) RentalsByRenter(renterID int64) []model.RentalWithDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.RentalWithDetails, 0)
	for _, r := range s.rentals {
		if r.RenterID != renterID {
			continue
		}
		idx := s.itemIndex(r.ItemID)
		if idx < 0 {
			continue
		}
		it := s.items[idx]
		out = append(out, model.RentalWithDetails{
			ID:          r.ID,
			ItemID:      r.ItemID,
			ItemName:    it.Name,
			Description: it.Description,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Status:      r.Status,
			TotalPrice:  r.TotalPrice,
			OwnerName:   s.ownerName(it.OwnerID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate.Time)
	})
	return out
}

// Counts reports registry sizes.
func (s *Store) Counts() (users, categories, items, rentals int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.categories), len(s.items), len(s.rentals)
}

func (s *Store) itemIndex(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) userByID(id int64) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) ownerName(userID int64) string {
	u, ok := s.userByID(userID)
	if !ok {
		return model.UnknownOwnerName
	}
	return u.DisplayName()
}
