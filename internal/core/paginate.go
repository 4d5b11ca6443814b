package core

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPageSize is returned when a page size is not in the permitted set.
var ErrInvalidPageSize = errors.New("invalid page size")

// DefaultPageSizes are the permitted page sizes when none are configured.
var DefaultPageSizes = PageSizes{16, 32}

// PageSizes is the fixed set of permitted page sizes. The first entry is the default.
type PageSizes []int

// Default returns the first permitted size.
func (p PageSizes) Default() int {
	if len(p) == 0 {
		return DefaultPageSizes[0]
	}
	return p[0]
}

// Allowed reports whether size is permitted.
func (p PageSizes) Allowed(size int) bool {
	if len(p) == 0 {
		return slices.Contains(DefaultPageSizes, size)
	}
	return slices.Contains(p, size)
}

// Check returns ErrInvalidPageSize when size is not permitted.
func (p PageSizes) Check(size int) error {
	if !p.Allowed(size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	return nil
}

// TotalPages returns ceil(count/size). An empty collection has zero pages.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate returns the requested window of items.
//
// Page numbers below 1 select the first page and numbers past the end select
// the last page, so a page that outlived a narrower filter still shows data.
// An empty collection reports page 1 of 0 with no items.
func Paginate[T any](items []T, page, size int) PageResult[T] {
	if size <= 0 {
		size = DefaultPageSizes[0]
	}

	total := TotalPages(len(items), size)
	if page < 1 {
		page = 1
	}
	switch {
	case total == 0:
		page = 1
	case page > total:
		page = total
	}

	result := PageResult[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: total,
	}
	if total == 0 {
		return result
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	result.Items = items[start:end]
	return result
}
