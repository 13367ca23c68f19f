package model

import "strings"

// Day is one of the seven weekday names.  The schedule week starts on
// Saturday.
type Day string

const (
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

var week = [...]Day{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

// Week returns the days in schedule order (Saturday=0 … Friday=6).
func Week() []Day {
	out := make([]Day, len(week))
	copy(out, week[:])
	return out
}

// Index returns the position of d in the schedule week, or -1 when d is not
// a known day.
func (d Day) Index() int {
	for i, w := range week {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven day names.
func (d Day) Valid() bool { return d.Index() >= 0 }

// ParseDay matches s against the day names ignoring case and surrounding
// whitespace and returns the canonical value.
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	for _, w := range week {
		if strings.EqualFold(string(w), s) {
			return w, true
		}
	}
	return "", false
}
