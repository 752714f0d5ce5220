package utils

import "math"

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPagination normalizes user supplied page and size values.
func NewPagination(page, pageSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	// Keep (page-1)*pageSize within int.
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// TotalPages is at least 1 so an empty listing still has a first page.
func (p PaginationParams) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Paginate returns the window of items selected by p.
func Paginate[T any](items []T, p PaginationParams) []T {
	if p.Offset < 0 || p.Offset >= len(items) {
		return nil
	}
	end := p.Offset + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
