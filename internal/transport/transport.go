// Package transport defines the capability contract delivery workers
// use to hand a rendered message to its channel's real provider. No
// adapter here calls a real SDK: each simulates the I/O the way the
// teacher's notification sender stubs out provider calls, so a real
// SDK can be slotted in later without touching worker logic.
package transport

import (
	"context"
	"fmt"

	"notifyhub/internal/model"
)

// Result carries the channel-specific metadata a delivery worker
// stores on the Delivery row after a successful send.
type Result struct {
	Metadata map[string]any
}

// Adapter performs the channel-specific I/O to deliver a rendered
// message to its ultimate destination.
type Adapter interface {
	Channel() model.Channel
	Send(ctx context.Context, msg model.RenderedMessage) (Result, error)
}

// ErrMissingContact is returned when a message lacks the contact
// field its channel requires (no user_email, user_phone, or push
// tokens resolved during enrichment).
type ErrMissingContact struct {
	Channel model.Channel
	Field   string
}

func (e *ErrMissingContact) Error() string {
	return fmt.Sprintf("%s delivery requires %s, none resolved for user", e.Channel, e.Field)
}
