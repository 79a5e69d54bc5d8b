package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shipdrop/backend/pkg/logger"
)

// DefaultCacheTTL keeps analytics answers fresh enough for a dashboard
// while absorbing bursts of identical queries.
const DefaultCacheTTL = 60 * time.Second

// Cache is a small read-through JSON cache over Redis. A nil client
// disables caching entirely; queries then recompute on every call.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a new analytics cache
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get loads a cached value into dest, reporting whether it was present
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Str("key", key).Msg("Analytics cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Analytics cache entry corrupt")
		return false
	}
	return true
}

// Set stores a value under the cache TTL. Failures only log; the caller
// already has the computed value.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Analytics cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Analytics cache write failed")
	}
}

// InvalidatePrefix drops every cached answer whose key starts with prefix.
// Top product and trend keys carry the request parameters, so a prefix
// sweep covers all variants at once.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("prefix", prefix).Msg("Analytics cache scan failed")
		return
	}
	c.Invalidate(ctx, keys...)
}

// Invalidate drops cached answers matching the given keys
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Analytics cache invalidation failed")
	}
}
