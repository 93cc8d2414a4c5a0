package models

import "time"

// Account event types published to the message broker.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
)

// AccountEvent is the payload published when an account is created or removed.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
