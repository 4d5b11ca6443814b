package core

import (
	"errors"
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 16, 0},
		{1, 16, 1},
		{16, 16, 1},
		{17, 16, 2},
		{25, 10, 3},
		{64, 32, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := seq(25)

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantItems []int
	}{
		{name: "first page", page: 1, wantPage: 1, wantItems: seq(10)},
		{name: "last partial page", page: 3, wantPage: 3, wantItems: []int{21, 22, 23, 24, 25}},
		{name: "page zero selects first", page: 0, wantPage: 1, wantItems: seq(10)},
		{name: "past the end clamps to last", page: 9, wantPage: 3, wantItems: []int{21, 22, 23, 24, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, 10)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if !reflect.DeepEqual(got.Items, tt.wantItems) {
				t.Errorf("Items = %v, want %v", got.Items, tt.wantItems)
			}
			if got.TotalPages != 3 || got.TotalItems != 25 || got.PageSize != 10 {
				t.Errorf("totals = %+v", got)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]int{}, 4, 16)
	if got.Page != 1 || got.TotalPages != 0 || got.TotalItems != 0 {
		t.Errorf("Paginate(empty) = %+v, want page 1 of 0", got)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", got.Items)
	}
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	items := seq(70)
	for _, size := range []int{16, 32} {
		var all []int
		total := TotalPages(len(items), size)
		for p := 1; p <= total; p++ {
			res := Paginate(items, p, size)
			if len(res.Items) > size {
				t.Errorf("page %d has %d items, more than %d", p, len(res.Items), size)
			}
			all = append(all, res.Items...)
		}
		if !reflect.DeepEqual(all, items) {
			t.Errorf("size %d: pages concatenate to %v", size, all)
		}
	}
}

func TestPageSizes(t *testing.T) {
	var none PageSizes
	if none.Default() != 16 {
		t.Errorf("Default() = %d, want 16", none.Default())
	}
	if !none.Allowed(32) || none.Allowed(20) {
		t.Error("empty set should fall back to the defaults")
	}

	custom := PageSizes{10, 50}
	if custom.Default() != 10 {
		t.Errorf("Default() = %d, want 10", custom.Default())
	}
	if err := custom.Check(50); err != nil {
		t.Errorf("Check(50) = %v", err)
	}
	if err := custom.Check(16); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("Check(16) = %v, want ErrInvalidPageSize", err)
	}
}

func TestPaginateEmptyThroughQuery(t *testing.T) {
	q := NewQuery(DefaultPageSizes).WithSearch("no such client")
	q.Page = 4

	got := q.Run(sampleClients(), refNow)
	if got.Page != 1 || got.TotalPages != 0 || len(got.Items) != 0 {
		t.Errorf("Run() = %+v, want page 1 of 0", got)
	}
}
