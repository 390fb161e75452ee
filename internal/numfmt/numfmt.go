// Package numfmt parses heterogeneous human-formatted counters from
// monitoring reports into plain floats.
package numfmt

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ParseCount parses a counter string into a float. It tolerates
// thousands separators, a trailing "+", a k/K suffix (x1000), a 万
// suffix (x10000), and full-width digits. Malformed, empty, or
// non-numeric input yields 0; it never returns an error.
func ParseCount(s string) float64 {
	s = strings.TrimSpace(width.Narrow.String(s))
	// A trailing + marks a capped counter ("10万+"); drop it so the
	// multiplier suffix underneath still binds.
	s = strings.TrimSpace(strings.TrimRight(s, "+"))
	if s == "" {
		return 0
	}

	// 万 binds to the whole mantissa and is checked before any
	// generic stripping. Only one suffix form applies per value.
	if rest, ok := strings.CutSuffix(s, "万"); ok {
		return mantissa(rest) * 10000
	}
	if rest, ok := strings.CutSuffix(s, "k"); ok {
		return mantissa(rest) * 1000
	}
	if rest, ok := strings.CutSuffix(s, "K"); ok {
		return mantissa(rest) * 1000
	}
	return mantissa(s)
}

// FormatCount renders a count as a plain decimal string. Whole values
// drop the fractional part.
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// mantissa strips everything but digits, the decimal point, and a
// leading minus, then parses. Unparsable input yields 0.
func mantissa(s string) float64 {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
