package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache stores serialized list responses keyed by resource.
type ListCache interface {
	Get(ctx context.Context, resource string) ([]byte, bool)
	Set(ctx context.Context, resource string, body []byte)
	Invalidate(ctx context.Context, resource string)
}

const listKeyPrefix = "retail:list:"

// RedisListCache keeps list bodies in Redis. A nil client turns every call into a no-op,
// so callers never need to check whether Redis is configured.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListCache returns a cache backed by client (may be nil).
func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context, resource string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, listKeyPrefix+resource).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("list cache read failed", "resource", resource, "error", err)
		}
		return nil, false
	}
	return b, true
}

func (c *RedisListCache) Set(ctx context.Context, resource string, body []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+resource, body, c.ttl).Err(); err != nil {
		slog.Warn("list cache write failed", "resource", resource, "error", err)
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context, resource string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listKeyPrefix+resource).Err(); err != nil {
		slog.Warn("list cache invalidate failed", "resource", resource, "error", err)
	}
}
