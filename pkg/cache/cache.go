// Package cache caches rendered transcripts keyed by a hash of the graph
// snapshot they were rendered from.
//
// Rendering is deterministic per input (identical snapshots produce
// byte-identical transcripts), which makes content-addressed caching safe:
// the key is derived from the canonical graph bytes, so a stale entry is
// impossible by construction and TTLs exist only to bound storage.
//
// Three backends are provided:
//   - file: per-user cache directory for CLI usage
//   - redis: shared cache for multi-instance serve deployments
//   - null: disables caching entirely
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values with optional expiration.
// Implementations must treat a missing key as a miss, never an error.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// TranscriptKey derives the cache key for a rendered transcript from the
// canonical graph snapshot bytes. The "transcript:" prefix namespaces
// transcript entries within shared backends.
func TranscriptKey(graphBytes []byte) string {
	return "transcript:" + Hash(graphBytes)
}

// SummaryKey derives the cache key for a rendered summary.
func SummaryKey(graphBytes []byte) string {
	return "summary:" + Hash(graphBytes)
}
