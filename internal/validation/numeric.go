package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/calcform/internal/domain"
)

var (
	// MinValue and MaxValue bound every numeric field, inclusive
	MinValue = decimal.Zero
	MaxValue = decimal.NewFromInt(1000)
)

// normalize trims surrounding space and turns a comma decimal separator into
// a period. Only the first comma is replaced, so "1,2,3" stays invalid.
func normalize(text string) string {
	return strings.Replace(strings.TrimSpace(text), ",", ".", 1)
}

// ParseNumeric parses raw field text into a finite decimal.
//
// Empty (or all-space) text parses to zero. This mirrors generic numeric
// coercion and means an emptied field counts as acceptable; CanSubmit still
// requires multiplier and divider to be non-empty.
//
// The text must also be a finite float64: overflow is rejected and
// underflow parses to zero. This bounds the decimal exponent, so range
// checks never rescale to an enormous power of ten.
func ParseNumeric(text string) (decimal.Decimal, bool) {
	s := normalize(text)
	if s == "" {
		return decimal.Zero, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if f == 0 {
		return decimal.Zero, true
	}
	return d, true
}

// IsAcceptable reports whether text may be stored in a numeric field
func IsAcceptable(text string) bool {
	d, ok := ParseNumeric(text)
	if !ok {
		return false
	}
	return d.GreaterThanOrEqual(MinValue) && d.LessThanOrEqual(MaxValue)
}

// Canonical returns the wire form of a field: the parsed number with a
// period separator and no redundant zeros. Empty text stays empty.
func Canonical(text string) (string, bool) {
	if text == "" {
		return "", true
	}
	d, ok := ParseNumeric(text)
	if !ok {
		return "", false
	}
	return d.String(), true
}

// CanSubmit reports whether the form may start a calculation. Month values
// are not required.
func CanSubmit(state domain.FormState) bool {
	return state.Multiplier != "" && state.Divider != "" && state.Checked
}
