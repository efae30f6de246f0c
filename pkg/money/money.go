// Package money formats donation amounts for display on receipts.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultPrefix is the currency prefix used when none is configured.
const DefaultPrefix = "R"

// Formatter renders amounts as "{prefix} {value}" with exactly two decimal
// places, rounding half away from zero.
type Formatter struct {
	prefix string
}

// NewFormatter creates a formatter for the given currency prefix. An empty
// prefix falls back to DefaultPrefix.
func NewFormatter(prefix string) Formatter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Formatter{prefix: prefix}
}

// Format renders a decimal amount, e.g. 250 -> "R 250.00".
func (f Formatter) Format(amount decimal.Decimal) string {
	return f.prefix + " " + amount.StringFixed(2)
}

// FormatFloat renders a float amount. NaN and infinities are coerced to zero
// so a bad value can never break receipt rendering.
func (f Formatter) FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return f.Format(decimal.NewFromFloat(v))
}
