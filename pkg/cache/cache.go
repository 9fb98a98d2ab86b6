// Package cache provides byte-oriented caching with interchangeable
// backends. The pair selectors use it to keep distance matrices across
// runs, since recomputing them is the dominant cost on large networks.
//
// Three backends are provided:
//   - FileCache: entries as files under a directory, for CLI usage
//   - RedisCache: shared cache for long-running deployments
//   - NullCache: disables caching entirely
//
// Keys are arbitrary strings; backends that need filesystem-safe or
// fixed-length keys hash them internally.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional
// expiration. A ttl of 0 means the entry never expires.
//
// Get reports a miss as (nil, false, nil): absence is not an error.
// Implementations are not required to be goroutine-safe.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
