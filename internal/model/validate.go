package model

import (
	"fmt"
	"strings"
)

// Messages shown to the user for the common validation failures.
const (
	MsgRequiredFields = "Please fill in all required fields."
	MsgStartBeforeEnd = "Start time must be before end time."
)

// ValidationError reports a rejected form field.  No mutation is attempted
// when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// NormalizeInput trims names, canonicalises the day and status and fills
// in the default status.  Values that cannot be canonicalised are left as
// they are for ValidateInput to reject.
func NormalizeInput(in BookingInput) BookingInput {
	in.GroupName = strings.TrimSpace(in.GroupName)
	in.InstructorName = strings.TrimSpace(in.InstructorName)
	in.RoomID = strings.TrimSpace(in.RoomID)
	in.TimeFrom = strings.TrimSpace(in.TimeFrom)
	in.TimeTo = strings.TrimSpace(in.TimeTo)
	if d, ok := ParseDay(string(in.Day)); ok {
		in.Day = d
	}
	if s, ok := ParseStatus(string(in.Status)); ok {
		in.Status = s
	}
	return in
}

// ValidateInput checks a normalized input against the form rules and the
// configured rooms.  It returns nil or a *ValidationError.
func ValidateInput(in BookingInput, rooms []Room) error {
	if in.GroupName == "" || in.InstructorName == "" || in.TimeFrom == "" || in.TimeTo == "" {
		return invalid("", MsgRequiredFields)
	}
	if !in.Day.Valid() {
		return invalid("day", fmt.Sprintf("unknown day %q", in.Day))
	}
	if _, ok := FindRoom(rooms, in.RoomID); !ok {
		return invalid("roomId", fmt.Sprintf("unknown room %q", in.RoomID))
	}
	from, err := ParseClock(in.TimeFrom)
	if err != nil {
		return invalid("timeFrom", err.Error())
	}
	to, err := ParseClock(in.TimeTo)
	if err != nil {
		return invalid("timeTo", err.Error())
	}
	if from >= to {
		return invalid("", MsgStartBeforeEnd)
	}
	if in.StudentsCount < 1 {
		return invalid("studentsCount", "must be at least 1")
	}
	if in.Status != StatusRegular && in.Status != StatusExtra {
		return invalid("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	return nil
}
