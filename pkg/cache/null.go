package cache

import (
	"context"
	"time"
)

// NullCache discards everything: every Get is a miss and every write
// succeeds silently. It backs --no-cache and any degraded path where a
// real backend could not be set up, so rendering keeps the same code path
// with recomputation as the only cost.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always reports a miss.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
