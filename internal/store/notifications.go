package store

import (
	"sync"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

// NotificationStore holds notifications newest-first plus an unread counter.
// The counter always equals the number of records with IsRead false; every
// mutation of a read flag adjusts it under the same lock.
type NotificationStore struct {
	mu     sync.RWMutex
	list   []models.Notification
	unread int
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Add prepends a notification. Live pushes arrive unread, so this is the
// one place the counter grows without a read action. Duplicate ids from a
// resync overlapping a live push are discarded.
func (s *NotificationStore) Add(n models.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(n)
}

// AddBatch prepends a missed-notification batch, keeping the batch order.
func (s *NotificationStore) AddBatch(ns []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(ns) - 1; i >= 0; i-- {
		s.addLocked(ns[i])
	}
}

func (s *NotificationStore) addLocked(n models.Notification) bool {
	for i := range s.list {
		if s.list[i].ID == n.ID {
			return false
		}
	}
	s.list = append([]models.Notification{n}, s.list...)
	if !n.IsRead {
		s.unread++
	}
	return true
}

// MarkRead flips one notification to read and decrements the counter if it
// was unread.
func (s *NotificationStore) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		if !s.list[i].IsRead {
			s.list[i].IsRead = true
			s.unread--
		}
		return true
	}
	return false
}

// MarkAllRead flips every notification to read and zeroes the counter.
func (s *NotificationStore) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.list {
		if !s.list[i].IsRead {
			s.list[i].IsRead = true
			n++
		}
	}
	s.unread = 0
	return n
}

// Delete removes a notification, decrementing the counter when the removed
// record was unread. The counter never goes below zero.
func (s *NotificationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		if !s.list[i].IsRead && s.unread > 0 {
			s.unread--
		}
		s.list = append(s.list[:i], s.list[i+1:]...)
		return true
	}
	return false
}

func (s *NotificationStore) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *NotificationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Snapshot returns a copy, newest first.
func (s *NotificationStore) Snapshot() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.list))
	copy(out, s.list)
	return out
}
