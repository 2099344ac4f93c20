package model

import "time"

// User is the recipient identity the core reads but never writes.
type User struct {
	ID         string
	Email      string
	Phone      string
	PushTokens []string
}

// Preference is a per-(user, channel, event_type) delivery rule.
// QuietHoursStart/End are either both set or both nil.
type Preference struct {
	UserID          string
	Channel         Channel
	EventType       EventType
	Enabled         bool
	QuietHoursStart *time.Time // time-of-day only; date component is ignored
	QuietHoursEnd   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasQuietHours reports whether both bounds of the quiet-hours window are set.
func (p Preference) HasQuietHours() bool {
	return p.QuietHoursStart != nil && p.QuietHoursEnd != nil
}

// Template is a per-(channel, event_type) rendering rule.
type Template struct {
	Channel   Channel
	EventType EventType
	Subject   string
	Body      string
	Variables []string
}

// DeliveryStatus enumerates the terminal and intermediate states of a Delivery row.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryBounced   DeliveryStatus = "bounced"
)

// Delivery is the audit row written by a delivery worker once a
// delivery concludes (success or terminal failure).
type Delivery struct {
	ID            int64
	UserID        string
	Channel       Channel
	EventType     EventType
	EventID       string
	Status        DeliveryStatus
	AttemptCount  int
	Metadata      map[string]any
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
}
