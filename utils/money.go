package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ErrNotAmount is returned by ParseAmount for text that is not a
// well-formed decimal number.
var ErrNotAmount = errors.New("not a decimal amount")

// ParseAmount parses decimal money text as entered in a form field or
// read from a data file. Leading/trailing whitespace is tolerated.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrNotAmount
	}
	return v, nil
}

// FormatAmount renders a money value as decimal text with no trailing
// zeros, the form the data files store.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
