package models

import "time"

// DeletedPlaceholder replaces a message body on soft delete so the record
// stays visible in the conversation without its content.
const DeletedPlaceholder = "[Message deleted]"

type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Text           string     `json:"text"`
	Attachments    []string   `json:"attachments,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	IsEdited       bool       `json:"is_edited,omitempty"`
	IsDeleted      bool       `json:"is_deleted,omitempty"`
}
