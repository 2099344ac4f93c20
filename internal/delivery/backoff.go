// Package delivery implements the per-channel worker loop: read the
// redelivery count, sleep the channel's backoff, invoke the transport
// adapter, persist the delivery row, and either ack or dead-letter.
package delivery

import (
	"time"

	"notifyhub/internal/model"
)

// MaxRetries bounds the number of delivery attempts before a message
// is moved to the dead-letter queue.
const MaxRetries = 3

// RetryDelays gives the backoff before each retry, indexed by
// redelivery count - 1 (clamped to the last entry).
var RetryDelays = map[model.Channel][]time.Duration{
	model.ChannelEmail: {1 * time.Second, 5 * time.Second, 15 * time.Second},
	model.ChannelSMS:   {2 * time.Second, 10 * time.Second, 30 * time.Second},
	model.ChannelPush:  {1 * time.Second, 5 * time.Second, 15 * time.Second},
	model.ChannelInApp: {},
}

// BackoffFor returns the delay to sleep before a retry with
// redelivery count r (0 on first attempt, so r=0 never sleeps).
func BackoffFor(channel model.Channel, r int) time.Duration {
	if r <= 0 {
		return 0
	}
	delays := RetryDelays[channel]
	if len(delays) == 0 {
		return 0
	}
	idx := r - 1
	if idx >= len(delays) {
		idx = len(delays) - 1
	}
	return delays[idx]
}

// CooldownFor returns how long a tripped circuit breaker sleeps
// before resetting, per channel.
func CooldownFor(channel model.Channel) time.Duration {
	if channel == model.ChannelSMS {
		return 15 * time.Second
	}
	return 10 * time.Second
}
