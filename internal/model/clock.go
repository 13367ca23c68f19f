package model

import (
	"errors"
	"fmt"
)

// ErrInvalidClock is returned when a time of day is not a zero-padded
// 24h "HH:MM" string.
var ErrInvalidClock = errors.New("time must use HH:MM 24h format")

// ParseClock converts "HH:MM" to minutes since midnight.  Only the fixed
// width form is accepted ("9:00" and "09:0" are rejected) so that stored
// values also order correctly as strings.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
