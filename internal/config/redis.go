package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"portal/internal/utils"
)

// NewRedisClient builds a Redis client for the price-option cache. Returns nil
// when no address is configured or the server is unreachable; callers degrade
// gracefully by skipping the cache.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		utils.Log.Warnf("redis unavailable at %s, option cache disabled: %v", addr, err)
		return nil
	}
	return client
}
