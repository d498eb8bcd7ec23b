package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadHusnain/skillswap-realtime/internal/models"
)

func conv(id string, last time.Time) models.Conversation {
	return models.Conversation{
		ID:                   id,
		Participants:         []string{"me", "them"},
		LastMessageTimestamp: last,
		UnreadCounts:         map[string]int{"me": 0, "them": 0},
	}
}

func assertSortedDesc(t *testing.T, convs []models.Conversation) {
	t.Helper()
	for i := 1; i < len(convs); i++ {
		assert.False(t, convs[i].LastMessageTimestamp.After(convs[i-1].LastMessageTimestamp),
			"index not sorted descending at position %d", i)
	}
}

func TestSetAllSorts(t *testing.T) {
	x := NewConversationIndex("me")
	base := time.Now().UTC()
	x.SetAll([]models.Conversation{
		conv("c1", base.Add(-2*time.Hour)),
		conv("c2", base),
		conv("c3", base.Add(-time.Hour)),
	})

	snap := x.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c2", snap[0].ID)
	assertSortedDesc(t, snap)
}

func TestApplyMessageResortsAndPreviews(t *testing.T) {
	x := NewConversationIndex("me")
	base := time.Now().UTC()
	x.SetAll([]models.Conversation{conv("c1", base), conv("c2", base.Add(-time.Hour))})

	x.ApplyMessage(models.Message{
		ID: "m1", ConversationID: "c2", SenderID: "them",
		Text: "bump", Timestamp: base.Add(time.Minute),
	}, "c1")

	snap := x.Snapshot()
	assert.Equal(t, "c2", snap[0].ID)
	assert.Equal(t, "bump", snap[0].LastMessage)
	assertSortedDesc(t, snap)
}

func TestUnreadAccounting(t *testing.T) {
	x := NewConversationIndex("me")
	base := time.Now().UTC()
	x.SetAll([]models.Conversation{conv("c1", base), conv("c2", base)})

	// message from a peer in a background conversation bumps unread
	x.ApplyMessage(models.Message{ID: "m1", ConversationID: "c2", SenderID: "them", Timestamp: base.Add(time.Second)}, "c1")
	assert.Equal(t, 1, x.Snapshot()[0].UnreadFor("me"))

	// own message never bumps it
	x.ApplyMessage(models.Message{ID: "m2", ConversationID: "c2", SenderID: "me", Timestamp: base.Add(2 * time.Second)}, "c1")
	assert.Equal(t, 1, x.Snapshot()[0].UnreadFor("me"))

	// messages in the open conversation don't either
	x.ApplyMessage(models.Message{ID: "m3", ConversationID: "c1", SenderID: "them", Timestamp: base.Add(3 * time.Second)}, "c1")
	for _, c := range x.Snapshot() {
		if c.ID == "c1" {
			assert.Equal(t, 0, c.UnreadFor("me"))
		}
	}

	x.MarkRead("c2")
	for _, c := range x.Snapshot() {
		if c.ID == "c2" {
			assert.Equal(t, 0, c.UnreadFor("me"))
		}
	}
}

func TestApplyMessageUnknownConversationIgnored(t *testing.T) {
	x := NewConversationIndex("me")
	x.SetAll([]models.Conversation{conv("c1", time.Now())})

	x.ApplyMessage(models.Message{ID: "m1", ConversationID: "ghost", SenderID: "them"}, "")
	assert.Len(t, x.Snapshot(), 1)
}
