package domain

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PaginationParams is a 1-indexed page window over a list query.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams resolves optional query values into a window.
// Missing or non-positive values become page 1 and limit 20; limits above
// 100 are clamped.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: defaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, maxPageLimit)
	}
	return p
}

// Offset is the SQL OFFSET for the window.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is how many windows of this size cover total rows.
func (p PaginationParams) TotalPages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
