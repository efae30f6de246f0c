package receiptno

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFormat(t *testing.T) {
	for _, prefix := range []string{"REC-", "HH-", "", "Long Prefix "} {
		number := Generate(prefix)

		pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\d{8}-\d{5}$`)
		assert.Regexp(t, pattern, number)
		assert.Len(t, number, len(prefix)+8+1+5)
	}
}

func TestGenerateAtUsesGivenDate(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

	number := GenerateAt("HH-", at)

	assert.Regexp(t, `^HH-20240301-\d{5}$`, number)
}

func TestGenerateRoundTripsThroughParse(t *testing.T) {
	number := Generate("REC-")

	date, suffix, err := Parse(number, "REC-")
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), date.Year())
	assert.Equal(t, now.Month(), date.Month())
	assert.Equal(t, now.Day(), date.Day())
	assert.Len(t, suffix, 5)
}

func TestGenerateSuffixVaries(t *testing.T) {
	// Two back-to-back numbers collide with probability 1/100000. Across 20
	// draws a repeat of every value is effectively impossible; assert that at
	// least two distinct suffixes show up.
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		_, suffix, err := Parse(Generate("HH-"), "HH-")
		require.NoError(t, err)
		seen[suffix] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		number string
		prefix string
	}{
		{"wrong prefix", "XX-20240301-12345", "HH-"},
		{"short date", "HH-2024031-12345", "HH-"},
		{"missing separator", "HH-2024030112345", "HH-"},
		{"short suffix", "HH-20240301-1234", "HH-"},
		{"alpha suffix", "HH-20240301-12a45", "HH-"},
		{"invalid month", "HH-20241301-12345", "HH-"},
		{"empty", "", "HH-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.number, tc.prefix)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
