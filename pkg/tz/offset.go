package tz

import (
	"fmt"
)

// ParseOffset parses an EXIF style UTC offset ("±HH:MM") into signed minutes.
// The sign is optional and defaults to "+".
func ParseOffset(s string) (int, error) {
	p := s
	sign := 1
	if len(p) > 0 && (p[0] == '+' || p[0] == '-') {
		if p[0] == '-' {
			sign = -1
		}
		p = p[1:]
	}

	if len(p) != 5 || p[2] != ':' {
		return 0, fmt.Errorf("%w: %q is not in ±HH:MM form", ErrMalformedOffset, s)
	}
	hh, ok1 := digits2(p[0:2])
	mm, ok2 := digits2(p[3:5])
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("%w: %q is not in ±HH:MM form", ErrMalformedOffset, s)
	}
	return sign * (60*hh + mm), nil
}

// FormatOffset serializes signed minutes as "±HH:MM". Zero is "+00:00".
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

func digits2(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
