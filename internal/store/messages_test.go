package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

func msg(id, conv, text string) models.Message {
	return models.Message{
		ID:             id,
		ConversationID: conv,
		SenderID:       "u1",
		Text:           text,
		Timestamp:      time.Now().UTC(),
	}
}

func TestUpsertDedup(t *testing.T) {
	s := NewMessageStore()

	require.True(t, s.Upsert(msg("m1", "c1", "hi")))
	require.False(t, s.Upsert(msg("m1", "c1", "hi")))
	assert.Equal(t, 1, s.Len())

	// duplicate carries different content and is still discarded whole
	require.False(t, s.Upsert(msg("m1", "c1", "changed")))
	assert.Equal(t, "hi", s.Snapshot()[0].Text)
}

func TestUpsertPreservesArrivalOrder(t *testing.T) {
	s := NewMessageStore()
	later := msg("m2", "c1", "second")
	later.Timestamp = time.Now().Add(-time.Hour) // older timestamp, arrives later
	s.Upsert(msg("m1", "c1", "first"))
	s.Upsert(later)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "m1", snap[0].ID)
	assert.Equal(t, "m2", snap[1].ID)
}

func TestApplyEdit(t *testing.T) {
	s := NewMessageStore()
	s.Upsert(msg("m1", "c1", "hi"))

	edited := msg("m1", "c1", "hello")
	require.True(t, s.ApplyEdit(edited))

	snap := s.Snapshot()
	assert.Equal(t, "hello", snap[0].Text)
	assert.True(t, snap[0].IsEdited)
}

func TestEditMissIsNoop(t *testing.T) {
	s := NewMessageStore()
	s.Upsert(msg("m1", "c1", "hi"))
	before := s.Snapshot()

	require.False(t, s.ApplyEdit(msg("ghost", "c1", "boo")))
	assert.Equal(t, before, s.Snapshot())
}

func TestApplyDelete(t *testing.T) {
	s := NewMessageStore()
	m := msg("m1", "c1", "hi")
	m.Attachments = []string{"file.png"}
	s.Upsert(m)

	require.True(t, s.ApplyDelete(msg("m1", "c1", "")))

	snap := s.Snapshot()
	assert.True(t, snap[0].IsDeleted)
	assert.Equal(t, models.DeletedPlaceholder, snap[0].Text)
	assert.Empty(t, snap[0].Attachments)
	assert.Equal(t, 1, s.Len(), "delete never removes the record")
}

func TestDeleteMissIsNoop(t *testing.T) {
	s := NewMessageStore()
	s.Upsert(msg("m1", "c1", "hi"))
	before := s.Snapshot()

	require.False(t, s.ApplyDelete(msg("ghost", "c1", "")))
	assert.Equal(t, before, s.Snapshot())
}

func TestResetDedups(t *testing.T) {
	s := NewMessageStore()
	s.Upsert(msg("old", "c1", "stale"))

	s.Reset([]models.Message{msg("m1", "c1", "a"), msg("m1", "c1", "a"), msg("m2", "c1", "b")})
	require.Equal(t, 2, s.Len())

	// ids from the page still dedup against live delivery
	require.False(t, s.Upsert(msg("m2", "c1", "b")))
}
