// Package model defines the domain types that flow through the
// notification pipeline: the per-stage event variants, the relational
// entities they are enriched/filtered against, and the delivery audit
// row written by workers.
package model

import (
	"encoding/json"
	"time"
)

// EventType enumerates the kinds of notification events the pipeline accepts.
type EventType string

const (
	EventTypeAccount    EventType = "account"
	EventTypeSecurity   EventType = "security"
	EventTypeMarketing  EventType = "marketing"
	EventTypeSystem     EventType = "system"
)

// ValidEventTypes lists every accepted EventType for schema validation.
var ValidEventTypes = map[EventType]bool{
	EventTypeAccount:   true,
	EventTypeSecurity:  true,
	EventTypeMarketing: true,
	EventTypeSystem:    true,
}

// Channel enumerates the delivery channels a notification may target.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

// ValidChannels lists every accepted Channel for schema validation.
var ValidChannels = map[Channel]bool{
	ChannelEmail: true,
	ChannelSMS:   true,
	ChannelPush:  true,
	ChannelInApp: true,
}

// Priority enumerates notification urgency levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities lists every accepted Priority for schema validation.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// SubmittedEvent is the wire shape accepted on notifications.events.
type SubmittedEvent struct {
	EventID     string          `json:"event_id"`
	EventType   EventType       `json:"event_type"`
	UserID      string          `json:"user_id"`
	Channels    []Channel       `json:"channels"`
	Priority    Priority        `json:"priority"`
	Data        map[string]any  `json:"data"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EnrichedEvent is a SubmittedEvent plus the recipient contact fields
// resolved from the User store and an enrichment timestamp.
type EnrichedEvent struct {
	SubmittedEvent

	EnrichedAt     time.Time `json:"enriched_at"`
	UserEmail      string    `json:"user_email,omitempty"`
	UserPhone      string    `json:"user_phone,omitempty"`
	UserPushTokens []string  `json:"user_push_tokens,omitempty"`
}

// RoutedEvent is an EnrichedEvent narrowed to a single allowed channel.
type RoutedEvent struct {
	EnrichedEvent

	Channel Channel `json:"channel"`
}

// RenderedMessage is a RoutedEvent after template rendering, ready for
// a delivery worker to hand to its transport adapter.
type RenderedMessage struct {
	RoutedEvent

	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	RenderedAt time.Time `json:"rendered_at"`
}

// DLQEntry is a RenderedMessage that exhausted its retry budget.
type DLQEntry struct {
	RenderedMessage

	Error       string    `json:"error"`
	MovedToDLQAt time.Time `json:"moved_to_dlq_at"`
}
