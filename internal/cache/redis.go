package cache

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix namespaces catalog entries so the Redis instance can be shared.
const keyPrefix = "ajjawi:catalog:"

// Redis is a Cache backed by a Redis instance.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the Redis instance at the given URL
// (redis://[user:pass@]host:port/db).
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

// Get returns the cached bytes for key. Connection errors are logged and
// reported as misses.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zctx.From(ctx).Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return b, true
}

// Set stores value under key for ttl. Write errors are logged and dropped.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		zctx.From(ctx).Debug("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Ping reports whether the Redis instance is reachable. Used as a readiness
// check.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
