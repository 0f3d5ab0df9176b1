// Package core defines the badminton domain model shared by every layer.
//
// This file contains amount parsing and VND currency formatting. Amounts are
// plain float64 VND values: the app only ever displays whole đồng, so no
// fixed-point representation is carried through the calculations.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-supplied VND amount string to a float64.
//
// Grouping separators (dots or commas, as in "300.000" or "300,000") are
// stripped before parsing. Negative values are rejected.
//
// Examples:
//
//	ParseAmount("300000")  -> 300000, nil
//	ParseAmount("300.000") -> 300000, nil
//	ParseAmount("300,000") -> 300000, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatVND renders an amount the way the vi-VN locale does: rounded to
// whole đồng, dot-grouped thousands, trailing currency sign.
//
//	FormatVND(390000) -> "390.000 ₫"
func FormatVND(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	n := int64(amount + 0.5)

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
		if len(digits) > pre {
			b.WriteByte('.')
		}
	}
	for i := pre; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	b.WriteString(" ₫")
	return b.String()
}
