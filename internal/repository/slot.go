package repository

import (
	"context"
	"errors"
)

// DataKey is the fixed key the tracker aggregate is stored under.
const DataKey = "devtracker.data"

// ErrNotFound is returned by Load when the key holds no value.
var ErrNotFound = errors.New("slot key not found")

// Slot is a durable key-value slot holding serialized blobs.
type Slot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}
