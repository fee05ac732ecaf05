package money

import (
	"fmt"
	"strings"
	"unicode"

	"wishlyBack/internal/models"
)

// Package money keeps every amount in integer minor units (cents) so that
// repeated additions and target comparisons stay exact. Decimal strings
// appear only at the presentation edge.

// ToMinorUnits parses a user-entered decimal amount into cents. Both '.'
// and ',' work as the decimal separator; whitespace (including non-breaking
// spaces used as thousands separators) is stripped. Negative values, more
// than two fraction digits and anything non-numeric fail with
// models.ErrInvalidAmount.
func ToMinorUnits(input string) (int64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || strings.Count(s, ".") > 1 {
		return 0, models.ErrInvalidAmount
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, models.ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, models.ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, models.ErrInvalidAmount
		}
		if cents > (1<<62)/10 {
			return 0, models.ErrInvalidAmount
		}
		cents = cents*10 + int64(r-'0')
	}
	return cents, nil
}

// ToDisplayAmount formats cents as a decimal string with two fraction
// digits, e.g. 5000 -> "50.00".
func ToDisplayAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func Add(a, b int64) int64 {
	return a + b
}

// Remaining returns how much is still missing toward the target, never
// negative.
func Remaining(target, collected int64) int64 {
	if collected >= target {
		return 0
	}
	return target - collected
}
