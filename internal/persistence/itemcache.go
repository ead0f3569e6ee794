package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const itemCacheVersionKey = "items:version"

// ItemCache is a read-through cache for item listing responses. Keys embed a
// namespace version; invalidation bumps the version so stale pages simply
// expire unreferenced.
type ItemCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewItemCache builds the cache. A nil client yields a cache that misses on
// every read, which keeps the catalog usable without Redis.
func NewItemCache(r *Redis, ttl time.Duration, logger *zap.Logger) *ItemCache {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &ItemCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached payload for the key, if any.
func (c *ItemCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("item cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// Set stores the payload under the key for the configured TTL.
func (c *ItemCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("item cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached listing by bumping the namespace version.
func (c *ItemCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, itemCacheVersionKey).Err(); err != nil {
		c.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}

func (c *ItemCache) versionedKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, itemCacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		version = 0
	}
	return fmt.Sprintf("items:v%d:%s", version, key)
}
