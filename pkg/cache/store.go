package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss indicates the requested key was not found or was expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidKey indicates the caller passed an empty cache key
	ErrInvalidKey = errors.New("invalid cache key: must be non-empty")
)

// Store is the caching contract shared by the in-memory and Redis backends.
// This abstraction allows swapping backends without changing tool handlers
// or the upstream client.
type Store interface {
	// Get retrieves the payload for key. Returns ErrCacheMiss if no fresh
	// entry exists and ErrInvalidKey for an empty key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites the payload for key with a fresh TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Prune removes expired entries and returns how many were removed.
	Prune(ctx context.Context) (int, error)

	// Snapshot returns the store's lifetime counters plus current size.
	// Read-only, no side effects.
	Snapshot() Stats

	// Clear removes all entries. Lifetime counters are kept.
	Clear(ctx context.Context) error
}
