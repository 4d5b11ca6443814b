package core

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// ParseDecimal Tests
// ----------------------------------------------------------------------------

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// pt-BR formatting
		{name: "currency with thousands", input: "R$ 1.234,56", want: "1234.56"},
		{name: "currency without space", input: "R$1.234,56", want: "1234.56"},
		{name: "plain comma decimal", input: "5000,5", want: "5000.5"},
		{name: "millions", input: "R$ 1.000.000,00", want: "1000000"},
		{name: "integer", input: "20000", want: "20000"},
		{name: "negative", input: "-12,30", want: "-12.3"},

		// Dots are always thousands separators
		{name: "dot is not a decimal point", input: "1234.56", want: "123456"},

		// Fallback to zero
		{name: "empty", input: "", want: "0"},
		{name: "whitespace", input: "   ", want: "0"},
		{name: "text", input: "abc", want: "0"},
		{name: "currency only", input: "R$", want: "0"},

		// Cell artifacts
		{name: "excel text prefix", input: `="1.500,00"`, want: "1500"},
		{name: "surrounding whitespace", input: "  42,10 ", want: "42.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			if got.String() != tt.want {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseInt Tests
// ----------------------------------------------------------------------------

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"07", 7},
		{"12", 12},
		{" 3 ", 3},
		{"-4", -4},
		{"", 0},
		{"x1", 0},
		{"1.5", 0},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.input); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// ParseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	want := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "ISO", input: "1990-03-15", wantValid: true},
		{name: "RFC3339", input: "1990-03-15T10:30:00Z", wantValid: true},
		{name: "RFC3339 with offset", input: "1990-03-15T22:30:00-03:00", wantValid: true},
		{name: "ISO datetime", input: "1990-03-15 08:00:00", wantValid: true},
		{name: "day first slash", input: "15/03/1990", wantValid: true},
		{name: "day first unpadded", input: "15/3/1990", wantValid: true},
		{name: "day first dash", input: "15-03-1990", wantValid: true},
		{name: "day first dot", input: "15.03.1990", wantValid: true},
		{name: "year first slash", input: "1990/03/15", wantValid: true},
		{name: "excel prefix", input: `="1990-03-15"`, wantValid: true},

		{name: "empty", input: "", wantValid: false},
		{name: "garbage", input: "not a date", wantValid: false},
		{name: "impossible day", input: "31/02/1990", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if IsValidDate(got) != tt.wantValid {
				t.Fatalf("IsValidDate(ParseDate(%q)) = %v, want %v", tt.input, IsValidDate(got), tt.wantValid)
			}
			if tt.wantValid && !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple string unchanged", input: "hello", want: "hello"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounded by whitespace", input: "  hello  ", want: "hello"},
		{name: "Excel formula with quotes", input: `="12345678901"`, want: "12345678901"},
		{name: "Excel formula empty", input: `=""`, want: ""},
		{name: "bare equals kept", input: "=SUM(A1)", want: "=SUM(A1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
