package testutil

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Dec parses a decimal literal and panics on malformed input.
// Only for use with constant literals in tests.
func Dec(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("testutil.Dec(%q): %v", s, err))
	}
	return d
}

// DecEqual reports whether two decimals are numerically equal, ignoring
// representation differences such as trailing zeros ("2" vs "2.00").
func DecEqual(a, b *apd.Decimal) bool {
	return a.Cmp(b) == 0
}
