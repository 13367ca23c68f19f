// Package store owns the authoritative booking collection.  Every
// mutation is validated, checked for conflicts, applied to a sorted slice
// and persisted as a whole through the Persistence port.  A failed save
// rolls the mutation back.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/schedule"
)

// Persistence loads and saves the whole booking collection.  Load reports
// found=false when nothing has been saved yet.  An error wrapping
// ErrCorruptState means the saved value exists but cannot be decoded; any
// other error is a read failure and the saved value must be left alone.
type Persistence interface {
	Load(ctx context.Context) (bookings []model.Booking, found bool, err error)
	Save(ctx context.Context, bookings []model.Booking) error
}

// LoadOutcome records how Open obtained the initial collection.
type LoadOutcome string

const (
	LoadedSaved   LoadOutcome = "saved"
	LoadedSeed    LoadOutcome = "seed"
	LoadedCorrupt LoadOutcome = "seed_after_corrupt"
)

// Store holds the bookings.  It is safe for concurrent use; each call runs
// to completion before the next one observes the collection.
type Store struct {
	mu       sync.Mutex
	p        Persistence
	rooms    []model.Room
	bookings []model.Booking
	revision uint64
	outcome  LoadOutcome
	strict   bool
	newID    func() (string, error)
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRooms sets the rooms bookings may reference.  Defaults to
// model.DefaultRooms.
func WithRooms(rooms []model.Room) Option {
	return func(s *Store) { s.rooms = append([]model.Room(nil), rooms...) }
}

// WithStrictLoad makes Open fail with ErrCorruptState instead of seeding
// when the saved state cannot be read.
func WithStrictLoad(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// WithIDGenerator replaces the id source.  Ids must be unique.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for load and persistence diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Open loads the saved collection once.  Missing state installs the seed
// dataset; unreadable state does the same unless strict loading is on.
func Open(ctx context.Context, p Persistence, opts ...Option) (*Store, error) {
	s := &Store{
		p:     p,
		rooms: model.DefaultRooms(),
		newID: newUUID,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}

	saved, found, err := p.Load(ctx)
	switch {
	case err != nil && !errors.Is(err, ErrCorruptState):
		return nil, fmt.Errorf("load bookings: %w", err)
	case err != nil && s.strict:
		return nil, err
	case err != nil:
		s.log.Warn("saved bookings unreadable, installing seed data", zap.Error(err))
		s.bookings = s.seed()
		s.outcome = LoadedCorrupt
	case !found:
		s.log.Info("no saved bookings, installing seed data")
		s.bookings = s.seed()
		s.outcome = LoadedSeed
	default:
		s.bookings = saved
		s.outcome = LoadedSaved
	}
	schedule.SortBookings(s.bookings)
	s.log.Info("bookings loaded", zap.String("source", string(s.outcome)), zap.Int("count", len(s.bookings)))
	return s, nil
}

// seed returns the seed bookings whose room is configured.
func (s *Store) seed() []model.Booking {
	out := make([]model.Booking, 0, len(SeedBookings()))
	for _, b := range SeedBookings() {
		if _, ok := model.FindRoom(s.rooms, b.RoomID); !ok {
			s.log.Info("skipping seed booking for unknown room", zap.String("id", b.ID), zap.String("room", b.RoomID))
			continue
		}
		out = append(out, b)
	}
	return out
}

// Outcome reports where the initial collection came from.
func (s *Store) Outcome() LoadOutcome { return s.outcome }

// Rooms returns the configured rooms.
func (s *Store) Rooms() []model.Room {
	return append([]model.Room(nil), s.rooms...)
}

// Revision increases with every successful mutation.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// List returns a copy of the collection in canonical order.
func (s *Store) List() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Booking(nil), s.bookings...)
}

// Get returns the booking with the given id.
func (s *Store) Get(id string) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// Check runs the conflict checker against the current collection without
// mutating anything.  excludeID is the booking being edited, or "".
func (s *Store) Check(candidate model.Booking, excludeID string) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return schedule.CheckConflict(candidate, s.bookings, excludeID)
}

// Add validates in, rejects it with a *ConflictError when it overlaps an
// existing booking, and otherwise stores it under a fresh id.
func (s *Store) Add(ctx context.Context, in model.BookingInput) (model.Booking, error) {
	in = model.NormalizeInput(in)
	if err := model.ValidateInput(in, s.rooms); err != nil {
		return model.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := in.WithID("")
	if existing, ok := schedule.CheckConflict(candidate, s.bookings, ""); ok {
		return model.Booking{}, &ConflictError{Existing: existing}
	}
	id, err := s.newID()
	if err != nil {
		return model.Booking{}, fmt.Errorf("generate booking id: %w", err)
	}
	candidate.ID = id

	next := make([]model.Booking, 0, len(s.bookings)+1)
	next = append(next, s.bookings...)
	next = append(next, candidate)
	if err := s.commit(ctx, next); err != nil {
		return model.Booking{}, err
	}
	return candidate, nil
}

// Update replaces the booking with b.ID.  The booking does not conflict
// with its own previous version.
func (s *Store) Update(ctx context.Context, b model.Booking) (model.Booking, error) {
	in := model.NormalizeInput(b.Input())
	if err := model.ValidateInput(in, s.rooms); err != nil {
		return model.Booking{}, err
	}
	updated := in.WithID(b.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.indexOf(b.ID)
	if pos < 0 {
		return model.Booking{}, ErrNotFound
	}
	if existing, ok := schedule.CheckConflict(updated, s.bookings, b.ID); ok {
		return model.Booking{}, &ConflictError{Existing: existing}
	}

	next := append([]model.Booking(nil), s.bookings...)
	next[pos] = updated
	if err := s.commit(ctx, next); err != nil {
		return model.Booking{}, err
	}
	return updated, nil
}

// Remove deletes the booking with the given id and reports whether it
// existed.  Unknown ids are a no-op.  Callers are expected to have
// confirmed the deletion with the user.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.indexOf(id)
	if pos < 0 {
		return false, nil
	}
	next := make([]model.Booking, 0, len(s.bookings)-1)
	next = append(next, s.bookings[:pos]...)
	next = append(next, s.bookings[pos+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) indexOf(id string) int {
	for i, b := range s.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// commit sorts and saves next, then swaps it in.  The current collection
// stays untouched when the save fails.  Caller holds s.mu.
func (s *Store) commit(ctx context.Context, next []model.Booking) error {
	schedule.SortBookings(next)
	if err := s.p.Save(ctx, next); err != nil {
		s.log.Error("save bookings failed", zap.Error(err))
		return fmt.Errorf("save bookings: %w", err)
	}
	s.bookings = next
	s.revision++
	return nil
}
