// Package cache stores resolution results so repeated runs over unchanged
// inputs skip the resolver.
//
// # Backends
//
//   - [FileCache]: JSON entries under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from everything that influences a resolution: the
// installed mods and their declarations, the previous order and the disabled
// set. Keys are SHA-256 hashes so they are safe as file names and Redis keys.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry at this level;
	// pipeline.Runner substitutes DefaultTTL before it calls Set.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long resolution results are kept.
const DefaultTTL = 7 * 24 * time.Hour
