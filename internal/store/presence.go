package store

import (
	"sync"
	"time"
)

// DefaultTypingTTL is how long a typing flag survives without a refresh.
const DefaultTypingTTL = 3 * time.Second

// PresenceStore tracks ephemeral per-user state: typing flags with automatic
// expiry and online/offline status from presence frames. Nothing here is
// persisted or ordered relative to messages.
type PresenceStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	typing map[string]uint64 // user id -> generation of the armed timer
	gen    uint64
	online map[string]bool
	closed bool
}

func NewPresenceStore(ttl time.Duration) *PresenceStore {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &PresenceStore{
		ttl:    ttl,
		typing: make(map[string]uint64),
		online: make(map[string]bool),
	}
}

// SetTyping sets or clears a user's typing flag. Setting arms a fresh
// auto-clear timer, superseding any prior one for that user; a stale timer
// firing after replacement is a no-op because its generation no longer
// matches.
func (p *PresenceStore) SetTyping(userID string, isTyping bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if !isTyping {
		delete(p.typing, userID)
		return
	}
	p.gen++
	gen := p.gen
	p.typing[userID] = gen
	time.AfterFunc(p.ttl, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if cur, ok := p.typing[userID]; ok && cur == gen {
			delete(p.typing, userID)
		}
	})
}

// IsTyping reports whether a user's typing flag is currently set.
func (p *PresenceStore) IsTyping(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.typing[userID]
	return ok
}

// TypingUsers returns the users whose typing flag is set.
func (p *PresenceStore) TypingUsers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.typing))
	for id := range p.typing {
		out = append(out, id)
	}
	return out
}

// SetOnline records a user's online/offline status.
func (p *PresenceStore) SetOnline(userID string, online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if online {
		p.online[userID] = true
	} else {
		delete(p.online, userID)
	}
}

// IsOnline reports whether a user was last seen online.
func (p *PresenceStore) IsOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online[userID]
}

// Close drops all flags and ignores any timers still in flight.
func (p *PresenceStore) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.typing = make(map[string]uint64)
	p.online = make(map[string]bool)
}
