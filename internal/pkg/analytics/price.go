package analytics

import (
	"strconv"
	"strings"
)

// ParsePrice extracts a numeric amount from a free-form price string. Project
// owners type prices however they like ("$1,234.50", "1500 MAD", "free"), so
// everything that is not a digit or decimal point is stripped and the rest is
// parsed as a decimal number. An empty or unparsable remainder is 0, never an
// error.
func ParsePrice(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}
