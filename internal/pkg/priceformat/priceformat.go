// Package priceformat formats and parses rupee amounts with Indian digit
// grouping (12,34,567).
package priceformat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned when a price string is not numeric.
var ErrInvalidPrice = errors.New("invalid price")

var currencyPrefixes = []string{"₹", "INR", "Rs.", "Rs"}

// Format renders v with en-IN grouping and at most two decimals.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	out := group(intPart)
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// Parse reverses Format. Blank input is zero.
func Parse(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(raw, prefix) {
			raw = strings.TrimSpace(strings.TrimPrefix(raw, prefix))
			break
		}
	}
	raw = strings.NewReplacer(",", "", " ", "").Replace(raw)
	if raw == "" {
		return 0, nil
	}

	if !plainDecimal(raw) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return v, nil
}

// plainDecimal accepts digits with at most one '.' and an optional leading
// '-'. Exponents, hex floats and signs elsewhere are rejected.
func plainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ParseNonNegative parses s and rejects negative amounts.
func ParseNonNegative(s string) (float64, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, s)
	}
	return v, nil
}

// group inserts commas: the last three digits, then pairs.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	parts := make([]string, 0, len(head)/2+1)
	for len(head) > 2 {
		parts = append(parts, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append(parts, head)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ",") + "," + tail
}
