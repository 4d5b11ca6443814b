package core

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownSortKey is returned when a sort key is not one of the supported keys.
var ErrUnknownSortKey = errors.New("unknown sort key")

// ErrUnknownSortOrder is returned when a direction is neither asc nor desc.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ParseSortKey validates a sort key. Empty input selects name.
// "birthDate" is accepted as an alias for age.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.TrimSpace(s) {
	case "", string(SortByName):
		return SortByName, nil
	case string(SortByAnnualIncome):
		return SortByAnnualIncome, nil
	case string(SortByNetWorth):
		return SortByNetWorth, nil
	case string(SortByAge), "birthDate":
		return SortByAge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// ParseSortOrder validates a direction. Empty input selects ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Ascending):
		return Ascending, nil
	case string(Descending):
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
	}
}

// sortEntry pairs a client with its precomputed sort key.
type sortEntry struct {
	client Client
	name   string
	amount decimal.Decimal
	age    int
}

// Sort returns a new slice ordered by key. Equal keys keep their input order.
// Descending negates the comparison rather than reversing the output, so
// ties stay in input order in both directions.
func Sort(clients []Client, key SortKey, order SortOrder, now time.Time) []Client {
	entries := make([]sortEntry, len(clients))
	for i, c := range clients {
		e := sortEntry{client: c}
		switch key {
		case SortByAnnualIncome:
			e.amount = c.AnnualIncome
		case SortByNetWorth:
			e.amount = c.NetWorth
		case SortByAge:
			age, ok := Age(c.BirthDate, now)
			if !ok {
				age = -1
			}
			e.age = age
		default:
			e.name = fold(c.Name)
		}
		entries[i] = e
	}

	sign := 1
	if order == Descending {
		sign = -1
	}

	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		var c int
		switch key {
		case SortByAnnualIncome, SortByNetWorth:
			c = a.amount.Cmp(b.amount)
		case SortByAge:
			c = cmp.Compare(a.age, b.age)
		default:
			c = strings.Compare(a.name, b.name)
		}
		return sign * c
	})

	out := make([]Client, len(entries))
	for i, e := range entries {
		out[i] = e.client
	}
	return out
}
