package dto

import (
	"errors"
	"net/url"
	"testing"

	"github.com/rentloop/rentloop/internal/model"
)

func TestParseSearchQuery(t *testing.T) {
	t.Parallel()

	q, _ := url.ParseQuery("query=tent&category_id=2&min_price=10.5&max_price=40&available=true")
	got, err := ParseSearchQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Query != "tent" || *got.CategoryID != 2 || *got.MinPrice != 10.5 || *got.MaxPrice != 40 || !*got.Available {
		t.Errorf("unexpected params: %+v", got)
	}

	empty, err := ParseSearchQuery(url.Values{"available": {""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Available != nil || empty.CategoryID != nil || empty.MinPrice != nil {
		t.Errorf("empty values should be unset: %+v", empty)
	}
}

func TestParseSearchQuery_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"category_id=abc", "min_price=cheap", "max_price=1e", "available=maybe"} {
		q, _ := url.ParseQuery(raw)
		if _, err := ParseSearchQuery(q); !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", raw, err)
		}
	}
}
