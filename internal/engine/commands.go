package engine

import (
	"context"
	"errors"

	"github.com/mohammadHusnain/skillswap-realtime/internal/protocol"
	"github.com/mohammadHusnain/skillswap-realtime/internal/transport"
)

// Outbound commands. Each either enqueues a frame synchronously or fails
// with a typed error; there is no optimistic local apply, stores change
// only when the confirmation frame comes back through the dispatcher.

func (e *Engine) chatSender() (string, func(any) error, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeConv == "" {
		return "", nil, ErrNoActiveConversation
	}
	if e.sendChat == nil || !e.chatAuthed {
		return "", nil, ErrNotConnected
	}
	return e.activeConv, e.sendChat, nil
}

func (e *Engine) wrapSend(err error) error {
	if errors.Is(err, transport.ErrNotOpen) {
		return ErrNotConnected
	}
	return err
}

// SendMessage sends a chat message to the active conversation.
func (e *Engine) SendMessage(text string, attachments []string) error {
	conv, send, err := e.chatSender()
	if err != nil {
		return err
	}
	return e.wrapSend(send(protocol.NewSendMessage(conv, text, attachments)))
}

// SendTyping signals the typing state. Bursts beyond the configured rate
// are dropped quietly; the 3-second expiry on the receiving side makes
// re-sends redundant anyway.
func (e *Engine) SendTyping(isTyping bool) error {
	conv, send, err := e.chatSender()
	if err != nil {
		return err
	}
	if isTyping && !e.typing.Allow() {
		return nil
	}
	return e.wrapSend(send(protocol.NewTyping(conv, isTyping)))
}

// EditMessage requests an in-place edit of an existing message.
func (e *Engine) EditMessage(messageID, text string) error {
	_, send, err := e.chatSender()
	if err != nil {
		return err
	}
	return e.wrapSend(send(protocol.NewEditMessage(messageID, text)))
}

// DeleteMessage requests a soft delete of an existing message.
func (e *Engine) DeleteMessage(messageID string) error {
	_, send, err := e.chatSender()
	if err != nil {
		return err
	}
	return e.wrapSend(send(protocol.NewDeleteMessage(messageID)))
}

// SendReadReceipt marks a conversation read. The local unread count resets
// once the frame is enqueued, matching the original client; a failed send
// leaves state untouched.
func (e *Engine) SendReadReceipt(conversationID string) error {
	active, send, err := e.chatSender()
	if err != nil {
		return err
	}
	if conversationID == "" {
		conversationID = active
	}
	if err := e.wrapSend(send(protocol.NewReadReceipt(conversationID, nil))); err != nil {
		return err
	}
	e.convs.MarkRead(conversationID)
	return nil
}

// MarkNotificationRead flips a notification to read, via the REST
// collaborator when configured, keeping the unread counter consistent.
func (e *Engine) MarkNotificationRead(ctx context.Context, id string) error {
	if e.collab.Manager != nil {
		if err := e.collab.Manager.MarkNotificationRead(ctx, id); err != nil {
			return err
		}
	}
	e.notifs.MarkRead(id)
	return nil
}

// MarkAllNotificationsRead flips every notification to read and zeroes the
// unread counter.
func (e *Engine) MarkAllNotificationsRead(ctx context.Context) error {
	if e.collab.Manager != nil {
		if err := e.collab.Manager.MarkAllNotificationsRead(ctx); err != nil {
			return err
		}
	}
	e.notifs.MarkAllRead()
	return nil
}

// DeleteNotification removes a notification locally and server-side.
func (e *Engine) DeleteNotification(ctx context.Context, id string) error {
	if e.collab.Manager != nil {
		if err := e.collab.Manager.DeleteNotification(ctx, id); err != nil {
			return err
		}
	}
	e.notifs.Delete(id)
	return nil
}
