package engine

import "errors"

var (
	// ErrNotConnected means a command needed an open, authenticated
	// transport and none was available. The command performed no local
	// mutation.
	ErrNotConnected = errors.New("realtime channel not connected")

	// ErrNoActiveConversation means a conversation-scoped command was
	// issued with nothing selected.
	ErrNoActiveConversation = errors.New("no active conversation")
)
