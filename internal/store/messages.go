// Package store holds the reconciled client-side state: the message list of
// the active conversation, the conversation index, notifications, and
// ephemeral typing/presence flags. All writes come from the engine's event
// loop; the RWMutexes only exist so UI readers can snapshot concurrently.
package store

import (
	"sync"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

// MessageStore is the ordered, deduplicated message list for the active
// conversation. Order is arrival order, not a timestamp sort.
type MessageStore struct {
	mu    sync.RWMutex
	order []models.Message
	byID  map[string]int
}

func NewMessageStore() *MessageStore {
	return &MessageStore{byID: make(map[string]int)}
}

// Upsert inserts a message if its id is absent and reports whether it was
// inserted. A record whose id is already present is discarded whole: the
// store cannot tell new content from a duplicate delivery, so content
// changes must arrive as explicit edit/delete frames. This is what collapses
// the message_sent confirmation and the broadcast copy of the same send
// into one record.
func (s *MessageStore) Upsert(m models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[m.ID]; ok {
		return false
	}
	s.byID[m.ID] = len(s.order)
	s.order = append(s.order, m)
	return true
}

// ApplyEdit merges new content into an existing record and marks it edited.
// Edits for unknown ids are dropped; there is no out-of-order buffering.
func (s *MessageStore) ApplyEdit(m models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[m.ID]
	if !ok {
		return false
	}
	cur := &s.order[i]
	cur.Text = m.Text
	if m.Attachments != nil {
		cur.Attachments = m.Attachments
	}
	cur.IsEdited = true
	return true
}

// ApplyDelete soft-deletes an existing record: the record stays in place,
// its body becomes the placeholder and attachments are cleared. Deletes for
// unknown ids are dropped.
func (s *MessageStore) ApplyDelete(m models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[m.ID]
	if !ok {
		return false
	}
	cur := &s.order[i]
	cur.IsDeleted = true
	cur.Text = models.DeletedPlaceholder
	cur.Attachments = nil
	return true
}

// Reset replaces the store contents with an initial history page, applying
// the same id dedup as live delivery.
func (s *MessageStore) Reset(msgs []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.byID = make(map[string]int, len(msgs))
	for _, m := range msgs {
		if _, ok := s.byID[m.ID]; ok {
			continue
		}
		s.byID[m.ID] = len(s.order)
		s.order = append(s.order, m)
	}
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns a copy of the message list in display order.
func (s *MessageStore) Snapshot() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.order))
	copy(out, s.order)
	return out
}
