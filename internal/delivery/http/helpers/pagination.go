package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"liveagenda/internal/domain"
)

// Pagination query parameter defaults and limits. Pages are zero-based.
const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the request query string.
// Missing values fall back to defaults; malformed or out-of-range values are
// an error so the caller can answer 400.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return domain.PaginationParams{}, fmt.Errorf("page must be an integer >= 0")
		}
		page = v
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return domain.PaginationParams{}, fmt.Errorf("page_size must be an integer >= 1")
		}
		pageSize = v
		if pageSize > MaxPageSize {
			pageSize = MaxPageSize
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}, nil
}
