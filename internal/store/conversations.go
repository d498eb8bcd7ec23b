package store

import (
	"sort"
	"sync"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

// ConversationIndex keeps conversation summaries sorted descending by last
// activity. Every mutation re-sorts before the lock is released.
type ConversationIndex struct {
	mu     sync.RWMutex
	list   []models.Conversation
	selfID string
}

func NewConversationIndex(selfID string) *ConversationIndex {
	return &ConversationIndex{selfID: selfID}
}

// SetAll replaces the index with an initial conversation list.
func (x *ConversationIndex) SetAll(convs []models.Conversation) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.list = append(x.list[:0], convs...)
	x.sortLocked()
}

// ApplyMessage updates the matching summary's preview and timestamp for an
// inbound message. The local user's unread count is bumped unless the
// message is their own or the conversation is currently open on screen.
func (x *ConversationIndex) ApplyMessage(m models.Message, activeConvID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i := range x.list {
		c := &x.list[i]
		if c.ID != m.ConversationID {
			continue
		}
		c.LastMessage = m.Text
		c.LastMessageTimestamp = m.Timestamp
		c.UpdatedAt = m.Timestamp
		if m.SenderID != x.selfID && m.ConversationID != activeConvID {
			if c.UnreadCounts == nil {
				c.UnreadCounts = make(map[string]int)
			}
			c.UnreadCounts[x.selfID]++
		}
		x.sortLocked()
		return
	}
}

// MarkRead zeroes the local user's unread count for one conversation.
func (x *ConversationIndex) MarkRead(conversationID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i := range x.list {
		c := &x.list[i]
		if c.ID != conversationID {
			continue
		}
		if c.UnreadCounts != nil {
			c.UnreadCounts[x.selfID] = 0
		}
		return
	}
}

// Snapshot returns a copy of the index, most recent activity first.
func (x *ConversationIndex) Snapshot() []models.Conversation {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]models.Conversation, len(x.list))
	copy(out, x.list)
	return out
}

func (x *ConversationIndex) sortLocked() {
	sort.SliceStable(x.list, func(i, j int) bool {
		return x.list[i].LastMessageTimestamp.After(x.list[j].LastMessageTimestamp)
	})
}
