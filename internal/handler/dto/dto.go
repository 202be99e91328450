// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rentloop/rentloop/internal/model"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ParseSearchQuery reads search filters from query string values. Empty
// values are treated as unset.
func ParseSearchQuery(q url.Values) (model.SearchParams, error) {
	params := model.SearchParams{Query: q.Get("query")}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return params, fmt.Errorf("%w: category_id must be an integer", model.ErrValidation)
		}
		params.CategoryID = &id
	}
	if v := q.Get("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("%w: min_price must be a number", model.ErrValidation)
		}
		params.MinPrice = &p
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("%w: max_price must be a number", model.ErrValidation)
		}
		params.MaxPrice = &p
	}
	if v := q.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, fmt.Errorf("%w: available must be true or false", model.ErrValidation)
		}
		params.Available = &b
	}

	return params, nil
}
