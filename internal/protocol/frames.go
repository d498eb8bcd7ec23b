// Package protocol defines the JSON frames exchanged over a realtime channel.
// Every frame carries a "type" discriminator; unknown types are ignored by
// the dispatcher.
package protocol

// Inbound frame types.
const (
	TypeAuthenticated       = "authenticated"
	TypeAuthRequired        = "auth_required"
	TypeMessage             = "message"
	TypeMessageSent         = "message_sent"
	TypeChatMessage         = "chat_message"
	TypeMissedMessage       = "missed_message"
	TypeMissedMessages      = "missed_messages"
	TypeMessageEdited       = "message_edited"
	TypeMessageDeleted      = "message_deleted"
	TypeTyping              = "typing"
	TypeNotification        = "notification"
	TypeMissedNotifications = "missed_notifications"
	TypeNotificationsSync   = "notifications_sync"
	TypePresence            = "presence"
	TypeReadReceipt         = "read_receipt"
	TypePong                = "pong"
	TypeError               = "error"
)

// Outbound frame types.
const (
	TypeAuthenticate      = "authenticate"
	TypeSendMessage       = "send_message"
	TypeEditMessage       = "edit_message"
	TypeDeleteMessage     = "delete_message"
	TypeGetMissedMessages = "get_missed_messages"
	TypePing              = "ping"
)

// Presence status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)
