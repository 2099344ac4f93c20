// Package ingestion consumes submitted events, validates, deduplicates,
// enriches with recipient contact data, and publishes enriched events.
package ingestion

import (
	"fmt"

	"notifyhub/internal/model"
)

// Validate rejects a submitted event missing required fields or
// carrying an out-of-enum value. Timestamp fields are validated by
// the JSON decode step itself (encoding/json rejects non-RFC-3339
// time.Time values), so there is no separate timestamp check here.
func Validate(event model.SubmittedEvent) error {
	if event.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if event.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !model.ValidEventTypes[event.EventType] {
		return fmt.Errorf("invalid event_type: %q", event.EventType)
	}
	if len(event.Channels) == 0 {
		return fmt.Errorf("channels must not be empty")
	}
	for _, ch := range event.Channels {
		if !model.ValidChannels[ch] {
			return fmt.Errorf("invalid channel: %q", ch)
		}
	}
	if event.Priority != "" && !model.ValidPriorities[event.Priority] {
		return fmt.Errorf("invalid priority: %q", event.Priority)
	}
	return nil
}
