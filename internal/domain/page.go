package domain

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is a 1-indexed page request passed from the HTTP layer
// down to the repo.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams resolves optional query values. Missing or
// non-positive values take the defaults; Limit is capped at MaxPageSize.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageSize}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageSize)
	}
	return p
}

// Offset is the SQL OFFSET for this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is the number of pages needed to list total rows. Zero rows is
// zero pages.
func (p PaginationParams) Pages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
