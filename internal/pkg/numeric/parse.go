// Package numeric coerces loosely formatted user input into numbers the way the
// dashboard always has: leading numeric prefix wins, garbage becomes a fallback.
package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseFloat parses the longest numeric prefix of s after leading whitespace.
// "12.5%" yields 12.5, "abc" and "" report ok=false.
func ParseFloat(s string) (v float64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	match := leadingNumber.FindString(s)
	if match == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Only range errors get here; strconv still returns ±Inf or 0.
		return v, !math.IsNaN(v)
	}
	return v, true
}

// FloatOr returns the parsed value, or fallback when the input is unparseable or zero.
func FloatOr(s string, fallback float64) float64 {
	v, ok := ParseFloat(s)
	if !ok || v == 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}

// FloatOrZero coerces a spreadsheet cell to a number; anything unparseable is 0.
func FloatOrZero(s string) float64 {
	v, ok := ParseFloat(s)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RoundInt rounds half away from zero.
func RoundInt(v float64) int {
	return int(math.Round(v))
}

// RoundCents rounds to two decimals the way the dashboard's Math.round(v*100)/100 does:
// the product is rounded to float64 first and ties go toward positive infinity, so
// 1.005 (stored as 1.00499...) becomes 1.00.
func RoundCents(v float64) float64 {
	cents := float64(v * 100)
	r := math.Floor(cents)
	if cents-r >= 0.5 {
		r++
	}
	return r / 100
}
