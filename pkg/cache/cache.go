// Package cache provides content-addressed caching of transform results.
//
// The engine itself is a pure function and holds no internal memoization;
// callers that invoke it repeatedly on unchanged input (the CLI, the HTTP
// API) cache serialized results here instead. Keys are derived from the
// SHA-256 hash of the raw network plus the transform options, so a cache
// entry can never be served for different input.
//
// Three backends are provided:
//   - FileCache: per-user directory cache for the CLI
//   - RedisCache: shared cache for multi-instance API deployments
//   - NullCache: disables caching (tests, --refresh)
package cache

import (
	"context"
	"time"

	"github.com/transferflow/transferflow/pkg/observability"
)

// Cache stores serialized transform results keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores the
	// value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TransformKey builds the cache key for a transform result from the
// network's content hash and the options that shaped the result.
func TransformKey(networkHash, level, flowType, metric string) string {
	return hashKey("transform", networkHash, level, flowType, metric)
}

// Instrument wraps a cache so hits, misses, and writes are reported to the
// registered observability cache hooks under the given key type.
func Instrument(c Cache, keyType string) Cache {
	return &instrumented{inner: c, keyType: keyType}
}

type instrumented struct {
	inner   Cache
	keyType string
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil && ok {
		observability.Cache().OnCacheHit(c.keyType)
	} else if err == nil {
		observability.Cache().OnCacheMiss(c.keyType)
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(c.keyType, len(data))
	}
	return err
}

func (c *instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumented) Close() error { return c.inner.Close() }
