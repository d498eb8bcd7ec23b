package engine

import (
	"context"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

// Collaborator interfaces for the REST side of the product. All are
// optional: a nil collaborator just means the engine starts from empty
// state and relies on channel resync.

// HistoryFetcher returns the initial ordered message page for a
// conversation.
type HistoryFetcher interface {
	Messages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}

// ConversationLister returns the initial conversation summaries.
type ConversationLister interface {
	Conversations(ctx context.Context) ([]models.Conversation, error)
}

// NotificationLister returns stored notifications.
type NotificationLister interface {
	Notifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
}

// NotificationManager mutates server-side notification state.
type NotificationManager interface {
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
}

// Collaborators bundles the optional REST dependencies.
type Collaborators struct {
	History       HistoryFetcher
	Conversations ConversationLister
	Notifications NotificationLister
	Manager       NotificationManager
}
