package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "ws:notifications"

// Broadcaster publishes delivered in-app messages to the websocket
// fan-out channel. Publish is best-effort: a subscriber that isn't
// currently connected simply misses the message, there's no replay.
type Broadcaster struct {
	rdb *redis.Client
}

func NewBroadcaster(rdb *redis.Client) *Broadcaster {
	return &Broadcaster{rdb: rdb}
}

// InAppMessage is the payload delivered to connected websocket clients.
type InAppMessage struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Publish sends msg to every subscriber of the broadcast channel.
// Errors are non-fatal to the caller's delivery outcome: the spec
// treats in-app fan-out as best-effort, not a condition for retry.
func (b *Broadcaster) Publish(ctx context.Context, msg InAppMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, broadcastChannel, payload).Err()
}
