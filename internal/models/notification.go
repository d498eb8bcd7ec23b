package models

import "time"

// Notification types as emitted by the backend.
const (
	NotificationNewMessage          = "new_message"
	NotificationPaymentSuccess      = "payment_success"
	NotificationPaymentReceived     = "payment_received"
	NotificationSubscriptionUpdated = "subscription_updated"
	NotificationSessionRequest      = "session_request"
	NotificationSessionAccept       = "session_accept"
	NotificationSessionReject       = "session_reject"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	RelatedID string    `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
