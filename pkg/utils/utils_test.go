package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, PaginationParams{Page: 1, PageSize: DefaultPageSize, Offset: 0}, p)

	p = NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset)

	assert.Equal(t, DefaultPageSize, NewPagination(1, 500).PageSize)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, NewPagination(1, 2)))
	assert.Equal(t, []int{5}, Paginate(items, NewPagination(3, 2)))
	assert.Nil(t, Paginate(items, NewPagination(4, 2)))

	assert.Equal(t, 3, NewPagination(1, 2).TotalPages(len(items)))
	assert.Equal(t, 1, NewPagination(1, 2).TotalPages(0))
}

func TestPaginateHugePage(t *testing.T) {
	p := NewPagination(922337203685477581, 20)
	assert.GreaterOrEqual(t, p.Offset, 0)
	assert.Nil(t, Paginate([]int{1, 2, 3}, p))

	p = NewPagination(math.MaxInt, 1)
	assert.GreaterOrEqual(t, p.Offset, 0)
	assert.Nil(t, Paginate([]int{1, 2, 3}, p))

	assert.Nil(t, Paginate([]int{1, 2, 3}, PaginationParams{Page: 1, PageSize: 2, Offset: -4}))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$4.20", FormatMoney(decimal.RequireFromString("4.1994")))
	assert.Equal(t, "$12.00", FormatMoney(decimal.NewFromInt(12)))
	assert.Equal(t, "1 item", Pluralize(1, "item"))
	assert.Equal(t, "0 items", Pluralize(0, "item"))
	assert.Equal(t, "3 items", Pluralize(3, "item"))
}
