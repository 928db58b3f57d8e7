// Package cache provides byte-level caching for rendered artifacts.
//
// Rendering a partition diagram through Graphviz is the only expensive
// operation in subnetplan, so the visualize path caches rendered bytes
// keyed by a hash of the DOT source and output format. Two implementations
// exist: a file-based cache for the CLI (XDG cache directory) and a no-op
// cache for --no-cache runs and tests.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTLs.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey builds the cache key for a rendered artifact from the DOT
// source and the output format. Identical partitions with identical
// options hash to the same key regardless of how they were produced.
func RenderKey(dot, format string) string {
	return fmt.Sprintf("render:%s:%s", format, Hash([]byte(dot)))
}
