package model

import "strings"

// Status classifies a booking as a regular class or an extra session.
type Status string

const (
	StatusRegular Status = "Regular"
	StatusExtra   Status = "Extra"
)

// ParseStatus canonicalises s.  An empty value yields StatusRegular.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return StatusRegular, true
	case strings.EqualFold(s, string(StatusRegular)):
		return StatusRegular, true
	case strings.EqualFold(s, string(StatusExtra)):
		return StatusExtra, true
	}
	return "", false
}

// Booking reserves one room on one weekday for the half-open interval
// [TimeFrom, TimeTo).  The JSON field names are the persisted layout and
// must not change without a migration.
//
// Fields:
//  ID             – generated at creation, immutable afterwards.
//  GroupName      – class or group using the room.
//  InstructorName – person leading the session.
//  Day            – weekday of the booking.
//  TimeFrom       – start, "HH:MM" 24h.
//  TimeTo         – end, "HH:MM" 24h, strictly after TimeFrom.
//  RoomID         – references Room.ID.
//  StudentsCount  – number of attendees, at least 1.
//  Status         – Regular or Extra.
type Booking struct {
	ID             string `json:"id"`
	GroupName      string `json:"groupName"`
	InstructorName string `json:"instructorName"`
	Day            Day    `json:"day"`
	TimeFrom       string `json:"timeFrom"`
	TimeTo         string `json:"timeTo"`
	RoomID         string `json:"roomId"`
	StudentsCount  int    `json:"studentsCount"`
	Status         Status `json:"status"`
}

// BookingInput carries the user-editable fields of a booking, i.e. a
// Booking without its ID.
type BookingInput struct {
	GroupName      string `json:"groupName"`
	InstructorName string `json:"instructorName"`
	Day            Day    `json:"day"`
	TimeFrom       string `json:"timeFrom"`
	TimeTo         string `json:"timeTo"`
	RoomID         string `json:"roomId"`
	StudentsCount  int    `json:"studentsCount"`
	Status         Status `json:"status"`
}

// WithID builds a Booking from the input and the given id.
func (in BookingInput) WithID(id string) Booking {
	return Booking{
		ID:             id,
		GroupName:      in.GroupName,
		InstructorName: in.InstructorName,
		Day:            in.Day,
		TimeFrom:       in.TimeFrom,
		TimeTo:         in.TimeTo,
		RoomID:         in.RoomID,
		StudentsCount:  in.StudentsCount,
		Status:         in.Status,
	}
}

// Input returns the editable fields of b.
func (b Booking) Input() BookingInput {
	return BookingInput{
		GroupName:      b.GroupName,
		InstructorName: b.InstructorName,
		Day:            b.Day,
		TimeFrom:       b.TimeFrom,
		TimeTo:         b.TimeTo,
		RoomID:         b.RoomID,
		StudentsCount:  b.StudentsCount,
		Status:         b.Status,
	}
}
