package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

func notif(id string, read bool) models.Notification {
	return models.Notification{
		ID:        id,
		Type:      models.NotificationNewMessage,
		Title:     "New message",
		Body:      "you have mail",
		IsRead:    read,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUnreadAccountingScenario(t *testing.T) {
	s := NewNotificationStore()
	assert.Equal(t, 0, s.Unread())

	require.True(t, s.Add(notif("n1", false)))
	assert.Equal(t, 1, s.Unread())

	require.True(t, s.MarkRead("n1"))
	assert.Equal(t, 0, s.Unread())

	// deleting an already-read notification leaves the counter alone
	require.True(t, s.Delete("n1"))
	assert.Equal(t, 0, s.Unread())

	// deleting an unread one decrements by exactly one, never below zero
	s.Add(notif("n2", false))
	require.True(t, s.Delete("n2"))
	assert.Equal(t, 0, s.Unread())

	require.False(t, s.Delete("n2"), "second delete finds nothing")
	assert.Equal(t, 0, s.Unread())
}

func TestAddPrependsNewestFirst(t *testing.T) {
	s := NewNotificationStore()
	s.Add(notif("n1", false))
	s.Add(notif("n2", false))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "n2", snap[0].ID)
	assert.Equal(t, 2, s.Unread())
}

func TestAddDuplicateDiscarded(t *testing.T) {
	s := NewNotificationStore()
	require.True(t, s.Add(notif("n1", false)))
	require.False(t, s.Add(notif("n1", false)))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Unread())
}

func TestAddBatch(t *testing.T) {
	s := NewNotificationStore()
	s.Add(notif("live", false))

	s.AddBatch([]models.Notification{notif("a", false), notif("b", true), notif("c", false)})
	assert.Equal(t, 4, s.Len())
	// unread grows by the unread portion of the batch
	assert.Equal(t, 3, s.Unread())

	// batch order kept, batch head first
	snap := s.Snapshot()
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)
	assert.Equal(t, "c", snap[2].ID)
	assert.Equal(t, "live", snap[3].ID)
}

func TestMarkReadIdempotent(t *testing.T) {
	s := NewNotificationStore()
	s.Add(notif("n1", false))

	require.True(t, s.MarkRead("n1"))
	require.True(t, s.MarkRead("n1"))
	assert.Equal(t, 0, s.Unread())

	require.False(t, s.MarkRead("ghost"))
}

func TestMarkAllRead(t *testing.T) {
	s := NewNotificationStore()
	s.Add(notif("n1", false))
	s.Add(notif("n2", false))
	s.Add(notif("n3", true))

	assert.Equal(t, 2, s.MarkAllRead())
	assert.Equal(t, 0, s.Unread())
	for _, n := range s.Snapshot() {
		assert.True(t, n.IsRead)
	}
}
