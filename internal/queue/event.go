// Package queue defines the booking change events exchanged over the
// message broker and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/room-booking/internal/model"
)

// EventType names the mutation that produced an event.
type EventType string

const (
	EventCreated EventType = "booking.created"
	EventUpdated EventType = "booking.updated"
	EventDeleted EventType = "booking.deleted"
)

// BookingEvent is published after a booking mutation has been persisted.
// For deletions only Booking.ID is guaranteed to be set.
type BookingEvent struct {
	Type       EventType     `json:"type"`
	Booking    model.Booking `json:"booking"`
	OccurredAt string        `json:"occurred_at"`
}

// NewBookingEvent stamps an event with the current UTC time.
func NewBookingEvent(t EventType, b model.Booking) BookingEvent {
	return BookingEvent{Type: t, Booking: b, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
}
