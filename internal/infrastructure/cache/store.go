package cache

import (
	"context"
	"time"
)

// Store is the key-value cache shared by the Redis and in-memory
// implementations. The pipeline uses it for run locks and metadata
// snapshots, so every operation takes a context.
type Store interface {
	// Get retrieves a value by key; the bool reports whether the key
	// existed and had not expired
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// SetNX stores the pair only if the key is absent, returning true when
	// the write happened. Used as a lightweight lock.
	SetNX(ctx context.Context, key, value string, expiration time.Duration) (bool, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection or goroutine
	Close() error
}
