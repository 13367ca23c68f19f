// Package service exposes the booking operations used by the HTTP layer:
// listBookings, addBooking, updateBooking and deleteBooking.  Successful
// mutations are announced through a Publisher.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	q "github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/schedule"
	"github.com/iliyamo/room-booking/internal/store"
)

// Messages returned on success.
const (
	MsgAdded   = "Booking added successfully!"
	MsgUpdated = "Booking updated successfully!"
	MsgDeleted = "Booking deleted successfully!"
)

// Result is the outcome of an add or update: a success flag and a message
// the UI can show inline.  Err carries the typed cause on failure.
type Result struct {
	Success bool
	Message string
	Booking model.Booking
	Err     error
}

// Bookings wires the store to the event publisher.
type Bookings struct {
	Store     *store.Store
	Publisher Publisher
	Grid      schedule.GridConfig
	Log       *zap.Logger
}

// NewBookings constructs the service.  A nil publisher disables events.
func NewBookings(s *store.Store, p Publisher, grid schedule.GridConfig, log *zap.Logger) *Bookings {
	if s == nil {
		panic("nil store passed to NewBookings")
	}
	if p == nil {
		p = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bookings{Store: s, Publisher: p, Grid: grid, Log: log}
}

// ListBookings returns the collection in canonical order.
func (b *Bookings) ListBookings() []model.Booking { return b.Store.List() }

// AddBooking stores a new booking.
func (b *Bookings) AddBooking(ctx context.Context, in model.BookingInput) Result {
	created, err := b.Store.Add(ctx, in)
	if err != nil {
		return failure(err)
	}
	b.publish(ctx, q.EventCreated, created)
	return Result{Success: true, Message: MsgAdded, Booking: created}
}

// UpdateBooking replaces an existing booking, keeping its id.
func (b *Bookings) UpdateBooking(ctx context.Context, bk model.Booking) Result {
	updated, err := b.Store.Update(ctx, bk)
	if err != nil {
		return failure(err)
	}
	b.publish(ctx, q.EventUpdated, updated)
	return Result{Success: true, Message: MsgUpdated, Booking: updated}
}

// DeleteBooking removes a booking.  It is idempotent; an event is only
// published by the call that actually removed it.
func (b *Bookings) DeleteBooking(ctx context.Context, id string) error {
	removed, err := b.Store.Remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		b.publish(ctx, q.EventDeleted, model.Booking{ID: id})
	}
	return nil
}

// CheckConflict reports the booking that candidate would collide with,
// without changing anything.
func (b *Bookings) CheckConflict(candidate model.Booking, excludeID string) (model.Booking, bool) {
	return b.Store.Check(candidate, excludeID)
}

// BuildGrid builds the weekly grid from the current collection.
func (b *Bookings) BuildGrid() *schedule.Grid {
	return schedule.BuildGrid(b.Store.List(), b.Store.Rooms(), b.Grid)
}

func (b *Bookings) publish(ctx context.Context, t q.EventType, bk model.Booking) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := b.Publisher.Publish(pctx, q.NewBookingEvent(t, bk)); err != nil {
		b.Log.Warn("publish booking event failed", zap.String("type", string(t)), zap.String("id", bk.ID), zap.Error(err))
	}
}

func failure(err error) Result {
	var ve *model.ValidationError
	var ce *store.ConflictError
	switch {
	case errors.As(err, &ve):
		return Result{Message: ve.Message, Err: err}
	case errors.As(err, &ce):
		return Result{Message: store.MsgConflict, Err: err}
	case errors.Is(err, store.ErrNotFound):
		return Result{Message: "Booking not found.", Err: err}
	}
	return Result{Message: "Could not save the booking.", Err: err}
}
