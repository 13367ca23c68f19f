package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/store"
)

// BlobStore is a named-slot byte store.  Get reports found=false for a key
// that was never written.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// DefaultBookingsKey is the slot holding the serialized collection.
const DefaultBookingsKey = "bookings"

// BookingBlob serializes the booking collection into a single blob.
type BookingBlob struct {
	blobs BlobStore
	key   string
}

var _ store.Persistence = (*BookingBlob)(nil)

// NewBookingBlob stores bookings under key in blobs.  An empty key uses
// DefaultBookingsKey.
func NewBookingBlob(blobs BlobStore, key string) *BookingBlob {
	if key == "" {
		key = DefaultBookingsKey
	}
	return &BookingBlob{blobs: blobs, key: key}
}

// Key returns the slot name.
func (b *BookingBlob) Key() string { return b.key }

// Load reads and decodes the collection.  A missing or empty slot is
// reported as not found.  A value that is not a JSON array of bookings
// wraps store.ErrCorruptState; read failures are returned as they are.
func (b *BookingBlob) Load(ctx context.Context) ([]model.Booking, bool, error) {
	raw, found, err := b.blobs.Get(ctx, b.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", b.key, err)
	}
	if !found || len(raw) == 0 {
		return nil, false, nil
	}
	var out []model.Booking
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, true, fmt.Errorf("%w: decode %s: %v", store.ErrCorruptState, b.key, err)
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, true, nil
}

// Save encodes the collection and writes it as one unit.
func (b *BookingBlob) Save(ctx context.Context, bookings []model.Booking) error {
	if bookings == nil {
		bookings = []model.Booking{}
	}
	raw, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	return b.blobs.Put(ctx, b.key, raw)
}
