// Package cache wraps the Redis client with the pipeline's three
// stateful idioms: event dedup, sliding rate limiting, and an
// attempt counter standing in for the redelivery count a classic
// RabbitMQ queue does not expose.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// Deduplicator guards against re-processing an event the broker
// redelivers after an ack was lost in transit.
type Deduplicator struct {
	rdb *redis.Client
}

func NewDeduplicator(rdb *redis.Client) *Deduplicator {
	return &Deduplicator{rdb: rdb}
}

// MarkSeen atomically claims eventID. It returns true the first time
// it is called for a given ID within the TTL window, false on every
// call after that (the caller should ack and drop the message).
func (d *Deduplicator) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, dedupKey(eventID), 1, dedupTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func dedupKey(eventID string) string {
	return fmt.Sprintf("dedup:%s", eventID)
}
