package core

// convert.go provides type conversion functions for spreadsheet cells.
//
// These functions handle the messy reality of exported sheet data:
//   - pt-BR numbers with a currency prefix ("R$ 1.234,56")
//   - Several date layouts (ISO, day-first pt-BR, RFC3339)
//   - Excel formula prefixes (="value")
//
// None of them fail. Unparsable numbers become zero and unparsable dates
// become the zero time, which IsValidDate reports as invalid.

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currencyPrefix is stripped from monetary cells before parsing.
const currencyPrefix = "R$"

// Date layouts tried in order. Day-first layouts follow the pt-BR convention.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
}

// ParseDecimal parses a pt-BR formatted amount such as "R$ 1.234,56".
//
// The currency symbol and every '.' thousands separator are removed, the
// first ',' becomes the decimal point and the result is trimmed. Anything
// that still fails to parse yields zero.
func ParseDecimal(s string) decimal.Decimal {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero
	}

	if i := strings.Index(s, currencyPrefix); i >= 0 {
		rest := s[i+len(currencyPrefix):]
		rest = strings.TrimPrefix(rest, " ")
		s = s[:i] + rest
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInt parses a base-10 integer such as a branch code ("07" → 7).
// Unparsable input yields zero.
func ParseInt(s string) int {
	i, err := strconv.Atoi(CleanCell(s))
	if err != nil {
		return 0
	}
	return i
}

// ParseDate parses a calendar date and returns it at UTC midnight.
// Unparsable input yields the zero time.
func ParseDate(s string) time.Time {
	s = CleanCell(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// IsValidDate reports whether t is a parsed date rather than the invalid sentinel.
func IsValidDate(t time.Time) bool {
	return !t.IsZero()
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}

	return s
}
