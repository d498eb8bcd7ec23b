package protocol

// Outbound frames are small typed structs so the encoder never builds
// ad-hoc maps. Constructors fill the type discriminator.

type Authenticate struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

func NewAuthenticate(token string) Authenticate {
	return Authenticate{Type: TypeAuthenticate, Token: token}
}

type SendMessage struct {
	Type           string   `json:"type"`
	ConversationID string   `json:"conversation_id"`
	Text           string   `json:"text"`
	Attachments    []string `json:"attachments,omitempty"`
}

func NewSendMessage(conversationID, text string, attachments []string) SendMessage {
	return SendMessage{Type: TypeSendMessage, ConversationID: conversationID, Text: text, Attachments: attachments}
}

type Typing struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
	IsTyping       bool   `json:"is_typing"`
}

func NewTyping(conversationID string, isTyping bool) Typing {
	return Typing{Type: TypeTyping, ConversationID: conversationID, IsTyping: isTyping}
}

type EditMessage struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
}

func NewEditMessage(messageID, text string) EditMessage {
	return EditMessage{Type: TypeEditMessage, MessageID: messageID, Text: text}
}

type DeleteMessage struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
}

func NewDeleteMessage(messageID string) DeleteMessage {
	return DeleteMessage{Type: TypeDeleteMessage, MessageID: messageID}
}

type ReadReceipt struct {
	Type           string   `json:"type"`
	ConversationID string   `json:"conversation_id"`
	MessageIDs     []string `json:"message_ids,omitempty"`
}

func NewReadReceipt(conversationID string, messageIDs []string) ReadReceipt {
	return ReadReceipt{Type: TypeReadReceipt, ConversationID: conversationID, MessageIDs: messageIDs}
}

type GetMissedMessages struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
}

func NewGetMissedMessages(conversationID string) GetMissedMessages {
	return GetMissedMessages{Type: TypeGetMissedMessages, ConversationID: conversationID}
}

type NotificationsSync struct {
	Type       string `json:"type"`
	UnreadOnly bool   `json:"unread_only"`
	Limit      int    `json:"limit"`
}

func NewNotificationsSync(unreadOnly bool, limit int) NotificationsSync {
	return NotificationsSync{Type: TypeNotificationsSync, UnreadOnly: unreadOnly, Limit: limit}
}

type Ping struct {
	Type string `json:"type"`
}

func NewPing() Ping {
	return Ping{Type: TypePing}
}
