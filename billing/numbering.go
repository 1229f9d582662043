package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// Document number prefixes.
const (
	BidPrefix     = "BID"
	InvoicePrefix = "INV"
)

// firstNumber is the suffix handed out when a tenant has no documents yet.
const firstNumber = 1001

// FormatNumber renders a document number, e.g. "INV-1001".
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

// ParseNumber extracts the numeric suffix of a document number. Returns 0
// for anything that doesn't match the prefix-dash-digits shape.
func ParseNumber(prefix, number string) int {
	rest, ok := strings.CutPrefix(number, prefix+"-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextNumber picks the next document number given the highest one already
// persisted. Called inside the request transaction; the unique index on the
// number column is the backstop if two transactions race.
func NextNumber(prefix, highest string) string {
	n := ParseNumber(prefix, highest)
	if n < firstNumber {
		n = firstNumber - 1
	}
	return FormatNumber(prefix, n+1)
}
