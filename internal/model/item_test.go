package model

import (
	"encoding/json"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestSearchParams_Matches(t *testing.T) {
	t.Parallel()

	drill := &Item{Name: "Cordless Drill", Description: "18V with two batteries", CategoryID: 2, Price: 1500, Available: true}
	tent := &Item{Name: "Camping Tent", Description: "Sleeps four", CategoryID: 3, Price: 2500, Available: false}

	tests := []struct {
		name   string
		params SearchParams
		item   *Item
		want   bool
	}{
		{"empty params match everything", SearchParams{}, tent, true},
		{"available filter keeps available", SearchParams{Available: ptr(true)}, drill, true},
		{"available filter drops unavailable", SearchParams{Available: ptr(true)}, tent, false},
		{"query matches name case-insensitively", SearchParams{Query: "DRILL"}, drill, true},
		{"query matches description", SearchParams{Query: "batteries"}, drill, true},
		{"query misses", SearchParams{Query: "kayak"}, drill, false},
		{"category equality", SearchParams{CategoryID: ptr(int64(3))}, tent, true},
		{"category mismatch", SearchParams{CategoryID: ptr(int64(3))}, drill, false},
		{"min price in major units inclusive", SearchParams{MinPrice: ptr(15.0)}, drill, true},
		{"min price excludes cheaper", SearchParams{MinPrice: ptr(20.0)}, drill, false},
		{"max price inclusive", SearchParams{MaxPrice: ptr(25.0)}, tent, true},
		{"max price excludes pricier", SearchParams{MaxPrice: ptr(24.99)}, tent, false},
		{"filters combine with AND", SearchParams{Query: "tent", Available: ptr(true)}, tent, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.params.Matches(tt.item); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemPatch_IgnoresProtectedFields(t *testing.T) {
	t.Parallel()

	listed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := Item{ID: 1, OwnerID: 1, Name: "Ladder", Price: 1000, DateListed: listed}

	var patch ItemPatch
	body := `{"id": 99, "owner_id": 7, "date_listed": "2030-01-01T00:00:00Z", "price": 9999}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch.Apply(&item)

	if item.ID != 1 || item.OwnerID != 1 || !item.DateListed.Equal(listed) {
		t.Errorf("protected fields changed: %+v", item)
	}
	if item.Price != 9999 {
		t.Errorf("expected price 9999, got %d", item.Price)
	}
	if item.Name != "Ladder" {
		t.Errorf("unset field changed: name = %q", item.Name)
	}
}

func TestItem_CloneDoesNotAliasImage(t *testing.T) {
	t.Parallel()

	item := Item{Image: ptr("a.png")}
	c := item.Clone()
	*c.Image = "b.png"
	if *item.Image != "a.png" {
		t.Errorf("clone aliased image pointer")
	}
}

func TestItemInput_Validate(t *testing.T) {
	t.Parallel()

	if err := (ItemInput{Name: "Saw", Price: 100}).Validate(); err != nil {
		t.Errorf("expected valid input, got %v", err)
	}
	if err := (ItemInput{Name: " "}).Validate(); err == nil {
		t.Error("expected error for blank name")
	}
	if err := (ItemInput{Name: "Saw", Price: -1}).Validate(); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestToMinorUnits(t *testing.T) {
	t.Parallel()

	if got := ToMinorUnits(10); got != 1000 {
		t.Errorf("ToMinorUnits(10) = %d", got)
	}
	if got := ToMinorUnits(19.99); got != 1999 {
		t.Errorf("ToMinorUnits(19.99) = %d", got)
	}
}
