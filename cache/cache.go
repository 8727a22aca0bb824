// Package cache provides the TTL cache the list endpoint sits behind. The
// backend (in-process or redis) is chosen at startup and handed to the list
// service explicitly; nothing in this package is a package-level singleton.
//
// Entries expire on a fixed TTL and are never invalidated by writes, so a
// cached list may be stale for up to one TTL after a create/update/delete.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long list responses stay cached.
const DefaultTTL = 5 * time.Minute

// Cache is a byte-value TTL cache. Get returns false for missing or expired
// keys. The TTL is fixed when the backend is constructed. Get and Set are
// individually atomic; two goroutines racing a miss will both compute and
// both write, which is redundant but harmless since they write equivalent
// values under the same key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}
