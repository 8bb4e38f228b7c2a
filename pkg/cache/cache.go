// Package cache stores rendered artifacts so that repeated renders of an
// unchanged topology skip Graphviz.
//
// Keys are derived from the rendered input (see [RenderKey]), so entries
// never go stale; a TTL only bounds disk usage.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or an expired
	// entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// RenderKey returns the cache key of source rendered to format.
func RenderKey(format string, source []byte) string {
	return "render:" + format + ":" + Hash(source)
}
