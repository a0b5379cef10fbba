package models

import "time"

// Webhook processing outcomes recorded in the audit trail.
const (
	WebhookReceived  = "received"
	WebhookProcessed = "processed"
	WebhookSkipped   = "skipped"
	WebhookFailed    = "failed"
)

// WebhookEvent is an audit record of one verified gateway notification.
// The raw payload is kept so failed deliveries can be reconciled manually.
type WebhookEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"index" json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `gorm:"index" json:"session_id"`
	Payload   string    `gorm:"type:text" json:"payload"`
	Status    string    `json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
