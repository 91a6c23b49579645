package forwarder

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache deduplicates forwarded documents by id, so that a retried publish
// (e.g. after a transient Kafka write failure) never lands the same
// record twice in the collector's index (§5 "forward must be effectively
// idempotent"). Implementations only need to remember an id has been
// seen for a short window — long enough to cover the forwarder's own
// retry backoff, not the lifetime of the action.
type Cache interface {
	// SeenRecently reports whether id was marked within the dedup window,
	// marking it as seen if it was not.
	SeenRecently(ctx context.Context, id string) (bool, error)
}

// NoopCache never deduplicates; every id is reported unseen. Used when no
// Cache is configured.
type NoopCache struct{}

func (NoopCache) SeenRecently(ctx context.Context, id string) (bool, error) { return false, nil }

// RedisCache implements Cache on top of a Redis client using SETNX-style
// semantics (SetNX), matching the connection style of the pack's redis
// repository usage.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache whose keys are prefixed and expire
// after ttl.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "actionlog:forwarded:"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// SeenRecently marks id as forwarded using SETNX; it returns true when the
// key already existed, meaning a prior attempt already forwarded it.
func (c *RedisCache) SeenRecently(ctx context.Context, id string) (bool, error) {
	set, err := c.client.SetNX(ctx, c.prefix+id, 1, c.ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
