package domain

// PaginatedResult wraps a page of items together with the total count and the
// window that produced it.
type PaginatedResult[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// NewPaginatedResult creates a PaginatedResult for the given window.
func NewPaginatedResult[T any](items []T, total int64, offset, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}
