package protocol

import (
	"encoding/json"
	"errors"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

var errMissingType = errors.New("frame has no type field")

// Inbound is the decoded form of a server frame. Only the fields matching
// the frame's type are populated; the rest stay at their zero value.
type Inbound struct {
	Type string `json:"type"`

	Message       *models.Message       `json:"message,omitempty"`
	Messages      []models.Message      `json:"messages,omitempty"`
	Notification  *models.Notification  `json:"notification,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`

	ConversationID string `json:"conversation_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	IsTyping       bool   `json:"is_typing,omitempty"`
	Status         string `json:"status,omitempty"`

	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Decode parses a raw websocket frame. Frames without a type discriminator
// are rejected so the dispatcher can drop them in one place.
func Decode(data []byte) (*Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	if in.Type == "" {
		return nil, errMissingType
	}
	return &in, nil
}
