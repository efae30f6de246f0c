// Package receiptno generates and parses human-readable receipt numbers.
//
// A receipt number has the form {prefix}{YYYYMMDD}-{NNNNN} where NNNNN is a
// random five digit suffix. The suffix gives a 1-in-100000 collision space per
// organization per day; uniqueness is enforced by the database's unique index
// on receipt_number, with the caller regenerating on conflict.
package receiptno

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// DefaultPrefix is used when an organization has no prefix configured.
// The generator itself never substitutes it; callers do.
const DefaultPrefix = "REC-"

const (
	dateLayout  = "20060102"
	suffixSpace = 100000
)

// Generate returns a new receipt number for the given prefix using the
// current date. It is total over all prefix values and never fails.
func Generate(prefix string) string {
	return GenerateAt(prefix, time.Now())
}

// GenerateAt returns a new receipt number for the given prefix and date.
func GenerateAt(prefix string, at time.Time) string {
	return fmt.Sprintf("%s%s-%05d", prefix, at.Format(dateLayout), rand.IntN(suffixSpace))
}

// ErrMalformed is returned by Parse when the input does not match the
// generated format.
var ErrMalformed = errors.New("malformed receipt number")

// Parse splits a receipt number generated with the given prefix back into
// its date and suffix components.
func Parse(number, prefix string) (date time.Time, suffix string, err error) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return time.Time{}, "", ErrMalformed
	}

	// {YYYYMMDD}-{NNNNN}
	if len(rest) != len(dateLayout)+1+5 || rest[len(dateLayout)] != '-' {
		return time.Time{}, "", ErrMalformed
	}

	date, err = time.Parse(dateLayout, rest[:len(dateLayout)])
	if err != nil {
		return time.Time{}, "", ErrMalformed
	}

	suffix = rest[len(dateLayout)+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return time.Time{}, "", ErrMalformed
		}
	}

	return date, suffix, nil
}
