// Package cache provides a short-TTL byte cache for raw upstream payloads.
// The catalog is a read-only snapshot refetched per page navigation, so a
// few seconds of staleness is acceptable and saves a round trip to the
// backend on every render.
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bytes keyed by request path. Implementations
// must treat failures as misses: the caller always has the upstream fetch
// as a fallback, so a cache error must never surface as a request error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Noop is the Cache used when no backing store is configured. Every lookup
// misses and writes are discarded.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
