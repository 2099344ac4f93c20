package redis

import (
	"github.com/redis/go-redis/v9"

	"notifyhub/pkg/config"
)

// NewClient constructs a Redis client for the ephemeral store (dedup
// set, rate-limit counters, attempt counters, broadcast pub/sub).
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
