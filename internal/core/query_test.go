package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewQuery(t *testing.T) {
	q := NewQuery(DefaultPageSizes)
	want := Query{SortBy: SortByName, Order: Ascending, Page: 1, PageSize: 16}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("NewQuery() = %+v, want %+v", q, want)
	}
}

func TestQueryWithPage(t *testing.T) {
	q := NewQuery(DefaultPageSizes)

	q2 := q.WithPage(3, 3)
	if q2.Page != 3 {
		t.Errorf("WithPage(3, 3).Page = %d, want 3", q2.Page)
	}
	if q.Page != 1 {
		t.Errorf("receiver modified: Page = %d", q.Page)
	}

	for _, page := range []int{0, -1, 4} {
		if got := q2.WithPage(page, 3); got.Page != 3 {
			t.Errorf("WithPage(%d, 3).Page = %d, want unchanged 3", page, got.Page)
		}
	}
}

func TestQueryWithPageSize(t *testing.T) {
	q := NewQuery(DefaultPageSizes).WithPage(2, 5)

	got, err := q.WithPageSize(32, DefaultPageSizes)
	if err != nil {
		t.Fatalf("WithPageSize(32) error = %v", err)
	}
	if got.PageSize != 32 || got.Page != 1 {
		t.Errorf("WithPageSize(32) = %+v, want size 32 page 1", got)
	}

	got, err = q.WithPageSize(20, DefaultPageSizes)
	if !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("WithPageSize(20) error = %v, want ErrInvalidPageSize", err)
	}
	if !reflect.DeepEqual(got, q) {
		t.Errorf("WithPageSize(20) = %+v, want unchanged %+v", got, q)
	}
}

func TestQueryWithSearchResetsPage(t *testing.T) {
	q := NewQuery(DefaultPageSizes).WithPage(4, 5).WithSearch("ana")
	if q.Page != 1 || q.Filter.Search != "ana" {
		t.Errorf("WithSearch() = %+v, want page 1 search ana", q)
	}
}

func TestQueryWithAgeRangeCopies(t *testing.T) {
	lo, hi := 20, 40
	q := NewQuery(DefaultPageSizes).WithAgeRange(&lo, &hi)
	lo, hi = 0, 0
	if *q.Filter.MinAge != 20 || *q.Filter.MaxAge != 40 {
		t.Errorf("age bounds follow caller variables: %d..%d", *q.Filter.MinAge, *q.Filter.MaxAge)
	}
}

func TestQueryRun(t *testing.T) {
	sizes := PageSizes{2}
	q := NewQuery(sizes).
		WithSearch("example.com").
		WithSort(SortByAge, Descending)

	res := q.Run(sampleClients(), refNow)
	if res.TotalItems != 2 || res.TotalPages != 1 {
		t.Fatalf("Run() totals = %+v", res)
	}
	if got := clientNames(res.Items); !reflect.DeepEqual(got, []string{"Élio Prado", "Ana Souza"}) {
		t.Errorf("Run() items = %v", got)
	}

	all := NewQuery(sizes).WithSort(SortByNetWorth, Ascending)
	page2 := all.WithPage(2, TotalPages(4, 2)).Run(sampleClients(), refNow)
	if got := clientNames(page2.Items); !reflect.DeepEqual(got, []string{"Élio Prado", "Carla Dias"}) {
		t.Errorf("page 2 = %v", got)
	}
}
