package domain

// PaginationParams holds offset-based pagination parameters for list queries.
// Page is zero-based: page 0 is the first page.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
// Formula: Page * PageSize, clamped at zero.
func (p PaginationParams) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.PageSize
}
