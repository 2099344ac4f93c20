package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptTTL = 24 * time.Hour

// AttemptCounter tracks per-message delivery attempts. RabbitMQ's
// classic queues don't surface a redelivery count on the delivery
// metadata the way some brokers do, so the worker pipeline keeps its
// own count here, keyed by event ID and channel, to stand in for it.
type AttemptCounter struct {
	rdb *redis.Client
}

func NewAttemptCounter(rdb *redis.Client) *AttemptCounter {
	return &AttemptCounter{rdb: rdb}
}

// IncrementAndGet increments the attempt count for eventID/channel and
// returns the new value.
func (a *AttemptCounter) IncrementAndGet(ctx context.Context, eventID, channel string) (int64, error) {
	key := attemptKey(eventID, channel)

	count, err := a.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		a.rdb.Expire(ctx, key, attemptTTL)
	}

	return count, nil
}

// Reset clears the attempt count, used once a message is finally
// delivered or moved to the dead-letter queue.
func (a *AttemptCounter) Reset(ctx context.Context, eventID, channel string) error {
	return a.rdb.Del(ctx, attemptKey(eventID, channel)).Err()
}

func attemptKey(eventID, channel string) string {
	return fmt.Sprintf("attempt:%s:%s", eventID, channel)
}
