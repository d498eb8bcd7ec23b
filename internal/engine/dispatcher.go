package engine

import (
	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
	"github.com/mohammadHusnain/skillswap-realtime/internal/protocol"
)

// handleFrame routes one inbound frame by its type discriminator. Malformed
// frames and unrecognized types are dropped without error; stale edits and
// deletes likewise. Runs on the event loop only.
func (e *Engine) handleFrame(kind channelKind, data []byte) {
	in, err := protocol.Decode(data)
	if err != nil {
		e.log.Debugf("dropping malformed frame: %v", err)
		return
	}

	switch in.Type {
	case protocol.TypeAuthenticated:
		e.handleAuthenticated(kind)

	case protocol.TypeAuthRequired:
		e.handleAuthRequired(kind)

	case protocol.TypeMessage, protocol.TypeMessageSent, protocol.TypeChatMessage, protocol.TypeMissedMessage:
		if in.Message != nil {
			e.applyMessage(*in.Message)
		}

	case protocol.TypeMissedMessages:
		for _, m := range in.Messages {
			e.applyMessage(m)
		}

	case protocol.TypeMessageEdited:
		if in.Message != nil && !e.messages.ApplyEdit(*in.Message) {
			e.log.Debugf("stale edit for message %s dropped", in.Message.ID)
		}

	case protocol.TypeMessageDeleted:
		if in.Message != nil && !e.messages.ApplyDelete(*in.Message) {
			e.log.Debugf("stale delete for message %s dropped", in.Message.ID)
		}

	case protocol.TypeTyping:
		if in.UserID != e.cfg.App.UserID {
			e.presence.SetTyping(in.UserID, in.IsTyping)
		}

	case protocol.TypePresence:
		e.presence.SetOnline(in.UserID, in.Status == protocol.StatusOnline)

	case protocol.TypeNotification:
		if in.Notification != nil {
			e.notifs.Add(*in.Notification)
		}

	case protocol.TypeMissedNotifications, protocol.TypeNotificationsSync:
		e.notifs.AddBatch(in.Notifications)

	case protocol.TypeReadReceipt:
		// only our own receipt moves local state; peers' receipts carry
		// nothing this client renders
		if in.UserID == e.cfg.App.UserID {
			e.convs.MarkRead(in.ConversationID)
		}

	case protocol.TypePong:
		// heartbeat response, never reaches the stores

	case protocol.TypeError:
		e.log.Warnf("server error frame: code=%s %s", in.Code, in.Error)

	default:
		// unrecognized type, ignored
	}
}

// applyMessage upserts into the message store when the message belongs to
// the active conversation and updates the conversation index once per
// message id, whatever shape the frame arrived in.
func (e *Engine) applyMessage(m models.Message) {
	e.mu.Lock()
	active := e.activeConv
	e.mu.Unlock()

	if active != "" && m.ConversationID == active {
		e.messages.Upsert(m)
	}
	if _, dup := e.seen[m.ID]; dup {
		return
	}
	e.seen[m.ID] = struct{}{}
	e.convs.ApplyMessage(m, active)
}

// handleAuthenticated marks the channel live and issues the resync request.
// The frame arrives once per connection, so each reconnect produces exactly
// one resync, and never against an unauthenticated channel.
func (e *Engine) handleAuthenticated(kind channelKind) {
	switch kind {
	case chatKind:
		e.mu.Lock()
		e.chatAuthed = true
		conv := e.activeConv
		if conv != "" {
			e.status = StatusLive
		}
		send := e.sendChat
		e.mu.Unlock()
		if conv == "" || send == nil {
			return
		}
		if err := send(protocol.NewGetMissedMessages(conv)); err != nil {
			e.log.Warnf("missed-messages request: %v", err)
		}
	case notifKind:
		e.mu.Lock()
		send := e.sendNotif
		e.mu.Unlock()
		if send == nil {
			return
		}
		if err := send(protocol.NewNotificationsSync(true, e.cfg.Sync.ResyncLimit)); err != nil {
			e.log.Warnf("notifications resync: %v", err)
		}
	}
}

// handleAuthRequired answers the server's prompt with an authenticate frame
// carrying the current credential.
func (e *Engine) handleAuthRequired(kind channelKind) {
	tok, err := e.tokens.Token()
	if err != nil {
		e.log.Warnf("authenticate: %v", err)
		return
	}
	e.mu.Lock()
	send := e.sendChat
	if kind == notifKind {
		send = e.sendNotif
	}
	e.mu.Unlock()
	if send == nil {
		return
	}
	if err := send(protocol.NewAuthenticate(tok)); err != nil {
		e.log.Warnf("authenticate send: %v", err)
	}
}
