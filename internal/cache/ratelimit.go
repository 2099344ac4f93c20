package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"notifyhub/internal/model"
)

const (
	rateLimitWindow = time.Hour
	rateLimitMax    = 10
)

// RateLimiter enforces a sliding window of at most rateLimitMax
// notifications per (user, channel, event_type) per hour. The window
// slides by TTL, not by bucket: the first increment in a window sets
// the expiry, and every increment after that rides on the same TTL
// until it lapses and a fresh window starts.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Allow increments the counter for the triple and reports whether the
// resulting count is still within budget. The increment happens
// whether or not the limit is exceeded, so a call that returns false
// (denied) still contributes to the window.
func (r *RateLimiter) Allow(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (bool, error) {
	key := rateLimitKey(userID, channel, eventType)

	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
			return false, err
		}
	}

	return count <= rateLimitMax, nil
}

func rateLimitKey(userID string, channel model.Channel, eventType model.EventType) string {
	return fmt.Sprintf("ratelimit:%s:%s:%s", userID, channel, eventType)
}
