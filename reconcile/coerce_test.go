package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseLoad(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"150", 150},
		{" 150 ", 150},
		{"150 MW", 150},
		{"12.5", 12.5},
		{".5", 0.5},
		{"-20", -20},
		{"1e3", 1000},
		{"", 0},
		{"N/A", 0},
		{"MW 150", 0},
		{"1,500", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseLoad(tt.in), 1e-12)
		})
	}
}

func TestLoadGigawatts(t *testing.T) {
	assert.InDelta(t, 0.15, LoadGigawatts("150"), 1e-12)
	assert.Zero(t, LoadGigawatts("unknown"))
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000000", "1000000"},
		{"$2,500,000", "2500000"},
		{"$1,234.56", "1234.56"},
		{"USD 99.9", "99.9"},
		{"1.2.3", "1.2"},
		{"-500", "500"},
		{"N/A", "0"},
		{"", "0"},
		{".", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			got := ParseBudget(tt.in)
			assert.True(t, want.Equal(got), "got %s, want %s", got, want)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-01-15",
		"2024-01-15T00:00:00Z",
		"2024-01-15 00:00:00",
		"1/15/2024",
		"01/15/2024",
		"Jan 15, 2024",
		"January 15, 2024",
		"2024/01/15",
		"Mon Jan 15 2024",
		" 2024-01-15 ",
	} {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseDate(in)
			assert.True(t, ok)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2024-13-45"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestDaysBetween(t *testing.T) {
	days, ok := daysBetween("2024-01-01", "2024-01-11")
	assert.True(t, ok)
	assert.InDelta(t, 10, days, 1e-12)

	days, ok = daysBetween("2024-01-01", "2024-01-01")
	assert.True(t, ok)
	assert.Zero(t, days)

	_, ok = daysBetween("2024-01-04", "2024-01-01")
	assert.False(t, ok)

	_, ok = daysBetween("2024-01-01", "")
	assert.False(t, ok)
}
