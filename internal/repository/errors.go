// Package repository implements the booking persistence port on top of a
// key-value blob store.  The whole collection lives under one key as a
// JSON array; backends only need to get and put opaque bytes.
package repository

import "errors"

// ErrEmptyKey is returned when a blob is addressed without a name.
var ErrEmptyKey = errors.New("blob key is empty")

// ErrNoBackend reports a storage driver with no blob store behind it.
var ErrNoBackend = errors.New("unknown storage driver")
