package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	f := NewFormatter("R")

	cases := []struct {
		amount string
		want   string
	}{
		{"250", "R 250.00"},
		{"0", "R 0.00"},
		{"19.995", "R 20.00"},   // half rounds away from zero
		{"19.994", "R 19.99"},
		{"1234567.5", "R 1234567.50"},
		{"-10.005", "R -10.01"},
	}

	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Format(decimal.RequireFromString(tc.amount)))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	f := NewFormatter("R")

	assert.Equal(t, "R 250.00", f.FormatFloat(250))
	assert.Equal(t, "R 20.00", f.FormatFloat(19.995))
	assert.Equal(t, "R 0.00", f.FormatFloat(0))
	assert.Equal(t, "R 0.00", f.FormatFloat(math.NaN()))
	assert.Equal(t, "R 0.00", f.FormatFloat(math.Inf(1)))
}

func TestEmptyPrefixFallsBack(t *testing.T) {
	f := NewFormatter("")

	assert.Equal(t, "R 1.00", f.FormatFloat(1))
}

func TestCustomPrefix(t *testing.T) {
	f := NewFormatter("ZAR")

	assert.Equal(t, "ZAR 99.90", f.FormatFloat(99.9))
}
