// Package cache provides layout-result caching for the arrange pipeline.
//
// Arranging a scene is deterministic: the same scene, configuration, and
// canvas always produce the same coordinates. That makes layout results
// perfect cache material: a content hash of the inputs keys the positioned
// output. Three backends are provided:
//
//   - [FileCache]: directory-backed, for CLI usage (XDG cache dir)
//   - [RedisCache]: shared cache for API deployments
//   - [NullCache]: no-op, for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
