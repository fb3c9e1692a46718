// Package cache provides the time-boxed result caches used by the
// summarization path. A Store keeps at most one live entry per key;
// entries older than the freshness window read as misses and are
// overwritten in place by the next Set.
package cache

import (
	"context"
	"time"
)

// DefaultFreshness is the window within which a cached value is
// returned without recomputation.
const DefaultFreshness = 5 * time.Minute

// Store is a key/value cache with a fixed freshness window.
// Implementations are safe for concurrent use. A lost update between
// concurrent writers is acceptable: last writer wins, and a stale read
// only costs a redundant recomputation.
type Store interface {
	// Get returns the cached value for key. ok is false on a miss or
	// when the entry has aged past the freshness window.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any prior entry.
	Set(ctx context.Context, key, value string) error

	// Purge removes expired entries and reports how many were removed.
	// Expiry correctness never depends on purging; it only reclaims space.
	Purge(ctx context.Context) (int, error)

	// Len returns the number of entries currently held, fresh or not.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
