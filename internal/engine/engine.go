// Package engine is the channel synchronization core: it owns the four
// state stores, runs the event loop that reconciles them against
// server-pushed frames, and encodes outbound commands. One engine serves
// both the active conversation channel and the notification stream as two
// configured instances of the same channel machinery.
package engine

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mohammadHusnain/skillswap-realtime/internal/auth"
	"github.com/mohammadHusnain/skillswap-realtime/internal/config"
	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
	"github.com/mohammadHusnain/skillswap-realtime/internal/store"
	"github.com/mohammadHusnain/skillswap-realtime/internal/transport"
)

type channelKind int

const (
	chatKind channelKind = iota
	notifKind
)

type inboundFrame struct {
	kind channelKind
	data []byte
}

// Engine owns the stores exclusively; UI code reads snapshots and issues
// commands, it never mutates store contents. All store writes happen on the
// run loop goroutine, so writers are never interleaved.
type Engine struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	tokens auth.TokenProvider
	dialer transport.Dialer
	collab Collaborators

	messages *store.MessageStore
	convs    *store.ConversationIndex
	notifs   *store.NotificationStore
	presence *store.PresenceStore

	frames chan inboundFrame
	stopCh chan struct{}
	wg     sync.WaitGroup
	stop   sync.Once

	mu         sync.Mutex
	status     Status
	activeConv string
	chat       *transport.Supervisor
	notifSup   *transport.Supervisor
	chatAuthed bool
	sendChat   func(any) error
	sendNotif  func(any) error

	// seen guards the conversation index against the double echo of a
	// just-sent message (message_sent plus broadcast). Only touched on the
	// run loop.
	seen map[string]struct{}

	typing *rate.Limiter
}

// New builds an engine. A nil dialer gets the gorilla websocket dialer;
// collaborators are optional.
func New(cfg *config.Config, log *zap.SugaredLogger, tokens auth.TokenProvider, dialer transport.Dialer, collab Collaborators) *Engine {
	if dialer == nil {
		dialer = transport.NewWSDialer()
	}
	return &Engine{
		cfg:      cfg,
		log:      log,
		tokens:   tokens,
		dialer:   dialer,
		collab:   collab,
		messages: store.NewMessageStore(),
		convs:    store.NewConversationIndex(cfg.App.UserID),
		notifs:   store.NewNotificationStore(),
		presence: store.NewPresenceStore(cfg.TypingTTL),
		frames:   make(chan inboundFrame, 256),
		stopCh:   make(chan struct{}),
		seen:     make(map[string]struct{}),
		typing:   rate.NewLimiter(rate.Limit(cfg.Sync.TypingRatePerSec), cfg.Sync.TypingBurst),
	}
}

// Start fetches the initial conversation and notification lists, starts the
// event loop, and opens the session-long notification stream channel.
// Connection failures are not errors here; the supervisor retries and the
// status flag is the only surface.
func (e *Engine) Start(ctx context.Context) {
	if e.collab.Conversations != nil {
		if convs, err := e.collab.Conversations.Conversations(ctx); err != nil {
			e.log.Warnf("conversation list fetch: %v", err)
		} else {
			e.convs.SetAll(convs)
		}
	}
	if e.collab.Notifications != nil {
		if ns, err := e.collab.Notifications.Notifications(ctx, false, e.cfg.Sync.ResyncLimit); err != nil {
			e.log.Warnf("notification list fetch: %v", err)
		} else {
			e.notifs.AddBatch(ns)
		}
	}

	e.wg.Add(1)
	go e.run()

	sup := transport.NewSupervisor(e.wsEndpoint("notifications"), e.dialer, e.tokens, e.chanOpts(), e.log, e.enqueue(notifKind), nil)
	e.mu.Lock()
	e.notifSup = sup
	e.sendNotif = sup.Send
	e.mu.Unlock()
	_ = sup.Open(ctx)
}

// Stop tears everything down: both channels, pending reconnects, the run
// loop, and all presence timers.
func (e *Engine) Stop() {
	e.stop.Do(func() {
		e.mu.Lock()
		chat, notif := e.chat, e.notifSup
		e.chat, e.notifSup = nil, nil
		e.sendChat, e.sendNotif = nil, nil
		e.chatAuthed = false
		e.activeConv = ""
		e.status = StatusIdle
		e.mu.Unlock()
		if chat != nil {
			chat.Close()
		}
		if notif != nil {
			notif.Close()
		}
		close(e.stopCh)
		e.wg.Wait()
		e.presence.Close()
	})
}

// SelectConversation makes a conversation active: the prior channel is torn
// down first (at most one active conversation transport per engine), the
// history page is fetched, then the new channel is opened. Dial failures
// surface only as the status flag; the supervisor keeps retrying.
func (e *Engine) SelectConversation(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return ErrNoActiveConversation
	}
	e.mu.Lock()
	prev := e.chat
	e.chat = nil
	e.sendChat = nil
	e.chatAuthed = false
	e.activeConv = conversationID
	e.status = StatusLoading
	e.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	e.messages.Reset(nil)
	if e.collab.History != nil {
		if page, err := e.collab.History.Messages(ctx, conversationID, e.cfg.Sync.ResyncLimit); err != nil {
			e.log.Warnf("history fetch %s: %v", conversationID, err)
		} else {
			e.messages.Reset(page)
		}
	}

	sup := transport.NewSupervisor(e.wsEndpoint(conversationID), e.dialer, e.tokens, e.chanOpts(), e.log, e.enqueue(chatKind), e.onChatState)
	e.mu.Lock()
	e.chat = sup
	e.sendChat = sup.Send
	e.mu.Unlock()
	_ = sup.Open(ctx)
	return nil
}

// Deselect closes the active conversation channel, cancelling pending
// retries, and returns to Idle.
func (e *Engine) Deselect() {
	e.mu.Lock()
	prev := e.chat
	e.chat = nil
	e.sendChat = nil
	e.chatAuthed = false
	e.activeConv = ""
	e.status = StatusIdle
	e.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
	e.messages.Reset(nil)
}

func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.stopCh:
			return
		case f := <-e.frames:
			e.handleFrame(f.kind, f.data)
		}
	}
}

func (e *Engine) enqueue(kind channelKind) func([]byte) {
	return func(data []byte) {
		select {
		case e.frames <- inboundFrame{kind: kind, data: data}:
		case <-e.stopCh:
		}
	}
}

func (e *Engine) onChatState(st transport.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch st {
	case transport.StateOpen:
		// live only after the authenticated frame
		e.chatAuthed = false
	case transport.StateRetrying:
		e.chatAuthed = false
		if e.activeConv != "" {
			e.status = StatusReconnecting
		}
	case transport.StateDisconnected:
		e.chatAuthed = false
		if e.activeConv == "" {
			e.status = StatusIdle
		}
	}
}

func (e *Engine) wsEndpoint(name string) string {
	return strings.TrimRight(e.cfg.WS.BaseURL, "/") + "/ws/chat/" + name + "/"
}

func (e *Engine) chanOpts() transport.Options {
	return transport.Options{
		PingInterval:   e.cfg.PingInterval,
		WriteDeadline:  e.cfg.WriteDeadline,
		MaxMessageSize: e.cfg.WS.MaxMessageSizeBytes,
		ReconnectDelay: e.cfg.ReconnectDelay,
		MaxReconnect:   e.cfg.MaxReconnect,
	}
}

// Snapshot accessors. Safe for concurrent readers.

func (e *Engine) Messages() []models.Message { return e.messages.Snapshot() }

func (e *Engine) Conversations() []models.Conversation { return e.convs.Snapshot() }

func (e *Engine) Notifications() []models.Notification { return e.notifs.Snapshot() }

func (e *Engine) UnreadNotifications() int { return e.notifs.Unread() }

func (e *Engine) TypingUsers() []string { return e.presence.TypingUsers() }

func (e *Engine) IsOnline(userID string) bool { return e.presence.IsOnline(userID) }

// Status reports the active conversation's connection lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Connected reports whether the active conversation channel is live.
func (e *Engine) Connected() bool { return e.Status() == StatusLive }

// NotificationsConnected reports whether the notification stream channel is
// open.
func (e *Engine) NotificationsConnected() bool {
	e.mu.Lock()
	sup := e.notifSup
	e.mu.Unlock()
	return sup != nil && sup.Connected()
}

// ActiveConversation returns the selected conversation id, empty when Idle.
func (e *Engine) ActiveConversation() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeConv
}
