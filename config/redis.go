package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance, nil when Redis is not configured
// or not reachable.
var RedisClient *redis.Client

// InitRedis connects to REDIS_ADDR and returns a status line for the startup log.
func InitRedis() string {
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		RedisClient = nil
		return "Redis not configured, caching disabled."
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(RedisCtx(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		_ = RedisClient.Close()
		RedisClient = nil
		return "Redis configured but not reachable, caching disabled."
	}
	return "Redis connection successful."
}

func RedisCtx() context.Context {
	return context.Background()
}
