package core

import "time"

// Query holds every parameter of the client list view.
//
// Query is a value: each With method returns a modified copy and leaves the
// receiver untouched, so a Query can be shared freely between goroutines.
type Query struct {
	Filter   FilterParams
	SortBy   SortKey
	Order    SortOrder
	Page     int
	PageSize int
}

// NewQuery returns the initial view: everything, by name ascending, page 1.
func NewQuery(sizes PageSizes) Query {
	return Query{
		SortBy:   SortByName,
		Order:    Ascending,
		Page:     1,
		PageSize: sizes.Default(),
	}
}

// WithSearch sets the search term and goes back to page 1.
func (q Query) WithSearch(term string) Query {
	q.Filter.Search = term
	q.Page = 1
	return q
}

// WithBranchMatch toggles matching the search term against branch fields.
func (q Query) WithBranchMatch(on bool) Query {
	q.Filter.MatchBranch = on
	return q
}

// WithAgeRange sets the inclusive age bounds. A nil bound is unset.
func (q Query) WithAgeRange(minAge, maxAge *int) Query {
	q.Filter.MinAge = copyInt(minAge)
	q.Filter.MaxAge = copyInt(maxAge)
	return q
}

// WithSort sets the sort key and direction.
func (q Query) WithSort(key SortKey, order SortOrder) Query {
	q.SortBy = key
	q.Order = order
	return q
}

// WithPage moves to page when it lies in [1, totalPages].
// Any other request returns q unchanged.
func (q Query) WithPage(page, totalPages int) Query {
	if page < 1 || page > totalPages {
		return q
	}
	q.Page = page
	return q
}

// WithPageSize changes the page size and goes back to page 1.
// Sizes outside the permitted set return ErrInvalidPageSize and q unchanged.
func (q Query) WithPageSize(size int, sizes PageSizes) (Query, error) {
	if err := sizes.Check(size); err != nil {
		return q, err
	}
	q.PageSize = size
	q.Page = 1
	return q, nil
}

// Run applies filter, sort and pagination to clients, in that order.
func (q Query) Run(clients []Client, now time.Time) PageResult[Client] {
	filtered := Filter(clients, q.Filter, now)
	sorted := Sort(filtered, q.SortBy, q.Order, now)
	return Paginate(sorted, q.Page, q.PageSize)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
