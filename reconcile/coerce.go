// reconcile/coerce.go
package reconcile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const megawattsPerGigawatt = 1000

var (
	// Leading numeric prefix, e.g. "150 MW" -> "150", "2.5e3x" -> "2.5e3".
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	// Budget prefix after stripping, no sign or exponent can survive the strip.
	leadingDecimal = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
	nonBudgetChars = regexp.MustCompile(`[^0-9.]`)
)

// Layouts tried before falling back to cast. All dates are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
}

// ParseLoad reads the leading number of a load projection. Anything that does
// not start with a number coerces to 0.
func ParseLoad(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// LoadGigawatts converts a megawatt load projection to gigawatts.
func LoadGigawatts(s string) float64 {
	return ParseLoad(s) / megawattsPerGigawatt
}

// ParseBudget drops every character that is not a digit or '.', then reads
// the leading number. "$1,250,000" is 1250000 and "N/A" is 0.
func ParseBudget(s string) decimal.Decimal {
	m := leadingDecimal.FindString(nonBudgetChars.ReplaceAllString(s, ""))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate parses a register date. The boolean is false for empty or
// unparseable input, in which case the record has no duration sample.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// daysBetween returns the fractional number of days from start to end.
// ok is false unless both dates parse and end is not before start.
func daysBetween(start, end string) (days float64, ok bool) {
	from, ok := ParseDate(start)
	if !ok {
		return 0, false
	}
	to, ok := ParseDate(end)
	if !ok {
		return 0, false
	}
	days = to.Sub(from).Hours() / 24
	if days < 0 {
		return 0, false
	}
	return days, true
}
