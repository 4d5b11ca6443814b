package core

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Age returns the whole years between birth and now.
//
// It is the calendar-year difference, minus one when now's month and day
// come before the birth month and day. An invalid birth date reports ok=false.
// Every age shown, filtered, sorted or bucketed goes through this function.
func Age(birth, now time.Time) (years int, ok bool) {
	if !IsValidDate(birth) {
		return 0, false
	}

	ny, nm, nd := now.Date()
	by, bm, bd := birth.Date()

	years = ny - by
	if nm < bm || (nm == bm && nd < bd) {
		years--
	}
	return years, true
}

// fold returns s case-folded for case-insensitive comparison.
// A new Caser is made per call because Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// FilterParams selects which clients pass the filter.
type FilterParams struct {
	Search      string // Free text; empty matches everything
	MatchBranch bool   // Also match the search term against the client's branch
	MinAge      *int   // Inclusive lower bound, nil when unset
	MaxAge      *int   // Inclusive upper bound, nil when unset
}

// HasAgeBounds reports whether either age bound is set.
func (p FilterParams) HasAgeBounds() bool {
	return p.MinAge != nil || p.MaxAge != nil
}

// Filter returns the clients matching p, preserving input order.
func Filter(clients []Client, p FilterParams, now time.Time) []Client {
	term := p.Search
	folded := fold(term)

	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if term != "" && !matchesText(c, term, folded, p.MatchBranch) {
			continue
		}
		if p.HasAgeBounds() && !matchesAge(c, p, now) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matchesText checks name, tax id, email and optionally the branch.
// The tax id and branch code are matched against the raw term.
func matchesText(c Client, term, folded string, matchBranch bool) bool {
	if strings.Contains(fold(c.Name), folded) {
		return true
	}
	if strings.Contains(c.TaxID, term) {
		return true
	}
	if strings.Contains(fold(c.Email), folded) {
		return true
	}
	if !matchBranch || c.Branch == nil {
		return false
	}
	return strings.Contains(fold(c.Branch.Name), folded) ||
		strings.Contains(fold(c.Branch.Address), folded) ||
		strings.Contains(strconv.Itoa(c.Branch.Code), term)
}

// matchesAge applies the age bounds. Clients without a valid birth date
// never satisfy a bound.
func matchesAge(c Client, p FilterParams, now time.Time) bool {
	age, ok := Age(c.BirthDate, now)
	if !ok {
		return false
	}
	if p.MinAge != nil && age < *p.MinAge {
		return false
	}
	if p.MaxAge != nil && age > *p.MaxAge {
		return false
	}
	return true
}
