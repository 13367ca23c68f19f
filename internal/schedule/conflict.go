// Package schedule holds the pure scheduling logic: interval overlap,
// conflict detection, canonical ordering and the weekly occupancy grid.
// Nothing in this package mutates its inputs.
package schedule

import (
	"sort"

	"github.com/iliyamo/room-booking/internal/model"
)

// Overlaps reports whether [fromA, toA) and [fromB, toB) intersect.  A
// booking ending exactly when another starts does not overlap it.
func Overlaps(fromA, toA, fromB, toB int) bool {
	return fromA < toB && toA > fromB
}

// bookingsOverlap compares two bookings' times in minutes.  Stored values
// that fail to parse are compared as strings, which is still ordered for
// the fixed width format.
func bookingsOverlap(a, b model.Booking) bool {
	af, err1 := model.ParseClock(a.TimeFrom)
	at, err2 := model.ParseClock(a.TimeTo)
	bf, err3 := model.ParseClock(b.TimeFrom)
	bt, err4 := model.ParseClock(b.TimeTo)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return a.TimeFrom < b.TimeTo && a.TimeTo > b.TimeFrom
	}
	return Overlaps(af, at, bf, bt)
}

// CheckConflict returns the first booking in existing (collection order)
// that shares candidate's room and day and overlaps its interval.  The
// booking with id excludeID is ignored; pass "" when inserting.
func CheckConflict(candidate model.Booking, existing []model.Booking, excludeID string) (model.Booking, bool) {
	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.RoomID != candidate.RoomID || b.Day != candidate.Day {
			continue
		}
		if bookingsOverlap(candidate, b) {
			return b, true
		}
	}
	return model.Booking{}, false
}

// Less orders bookings by weekday index and then start time.
func Less(a, b model.Booking) bool {
	ai, bi := a.Day.Index(), b.Day.Index()
	if ai != bi {
		return ai < bi
	}
	return a.TimeFrom < b.TimeFrom
}

// SortBookings sorts bs in place into canonical order.  Equal keys keep
// their relative order.
func SortBookings(bs []model.Booking) {
	sort.SliceStable(bs, func(i, j int) bool { return Less(bs[i], bs[j]) })
}
