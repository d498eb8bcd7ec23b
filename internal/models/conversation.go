package models

import "time"

type Conversation struct {
	ID                   string         `json:"id"`
	Participants         []string       `json:"participants"`
	LastMessage          string         `json:"last_message"`
	LastMessageTimestamp time.Time      `json:"last_message_timestamp"`
	UnreadCounts         map[string]int `json:"unread_counts,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// UnreadFor returns the unread count tracked for one participant.
func (c *Conversation) UnreadFor(userID string) int {
	if c.UnreadCounts == nil {
		return 0
	}
	return c.UnreadCounts[userID]
}
