package store

import (
	"errors"
	"fmt"

	"github.com/iliyamo/room-booking/internal/model"
)

// ErrNotFound is returned by Update when no booking has the given id.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("booking not found")

// ErrCorruptState marks a saved collection that exists but cannot be
// decoded.  Persistence implementations wrap it; Open returns it in strict
// mode.
var ErrCorruptState = errors.New("saved bookings are unreadable")

// MsgConflict is the user-facing conflict message.
const MsgConflict = "Time conflict! Another booking exists in the same room at the same time."

// ConflictError reports that a candidate booking overlaps Existing in the
// same room and day.  The collection is left unchanged.
type ConflictError struct {
	Existing model.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%s)", MsgConflict, Describe(e.Existing))
}

// Describe renders a booking as a one-line human-readable summary.
func Describe(b model.Booking) string {
	return fmt.Sprintf("%q with %s in room %s on %s %s-%s", b.GroupName, b.InstructorName, b.RoomID, b.Day, b.TimeFrom, b.TimeTo)
}
