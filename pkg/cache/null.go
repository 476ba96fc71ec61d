package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses on every read. It backs
// --no-cache runs and tests where arrange results must always be recomputed.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get misses for every key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete has nothing to delete.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close releases nothing.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
