// Package cache provides the key-value side-cache used by the trip service.
//
// The cache is an optimization layer with no authority: a missing key falls
// through to the store, and a present entry is trusted as-is until its TTL
// elapses or it is explicitly invalidated.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a minimal key-value store with per-key expiry. The production
// implementation is Redis; an in-process implementation exists as a startup
// fallback and test double.
type Cache interface {
	// Get returns the value for key, or (nil, nil) when the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with the given TTL. Set is atomic per key.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes the given keys. Deleting an absent key is not an error.
	Del(ctx context.Context, keys ...string) error
	// Ping verifies the cache is reachable.
	Ping(ctx context.Context) error
	// Close releases client resources.
	Close() error
}

// Cache key construction lives here so the key families cannot drift between
// the service and its tests.

// TripKey returns the cache key for a single trip record.
func TripKey(id int64) string {
	return fmt.Sprintf("trip_%d", id)
}

// StatsKey is the cache key for the by-passenger-count aggregation. The
// version suffix is a cache-busting handle: bump it whenever the output
// shape of the aggregation changes, so stale entries of the old shape are
// orphaned instead of producing parse errors.
const StatsKey = "stats_by_passenger_count_v2"
