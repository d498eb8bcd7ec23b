package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, cond())
}

func TestTypingAutoExpiry(t *testing.T) {
	p := NewPresenceStore(50 * time.Millisecond)
	defer p.Close()

	p.SetTyping("u1", true)
	assert.True(t, p.IsTyping("u1"))

	waitFor(t, time.Second, func() bool { return !p.IsTyping("u1") })
}

func TestTypingRefreshSupersedesTimer(t *testing.T) {
	p := NewPresenceStore(80 * time.Millisecond)
	defer p.Close()

	p.SetTyping("u1", true)
	time.Sleep(50 * time.Millisecond)
	p.SetTyping("u1", true)
	// the first timer fires around now; the refreshed flag must survive it
	time.Sleep(50 * time.Millisecond)
	assert.True(t, p.IsTyping("u1"))

	waitFor(t, time.Second, func() bool { return !p.IsTyping("u1") })
}

func TestTypingFalseClearsImmediately(t *testing.T) {
	p := NewPresenceStore(time.Hour)
	defer p.Close()

	p.SetTyping("u1", true)
	p.SetTyping("u1", false)
	assert.False(t, p.IsTyping("u1"))
	assert.Empty(t, p.TypingUsers())
}

func TestOnlineStatus(t *testing.T) {
	p := NewPresenceStore(0)
	defer p.Close()

	p.SetOnline("u1", true)
	assert.True(t, p.IsOnline("u1"))
	p.SetOnline("u1", false)
	assert.False(t, p.IsOnline("u1"))
}

func TestCloseDropsFlagsAndIgnoresLateTimers(t *testing.T) {
	p := NewPresenceStore(30 * time.Millisecond)
	p.SetTyping("u1", true)
	p.Close()

	assert.False(t, p.IsTyping("u1"))
	p.SetTyping("u2", true)
	assert.False(t, p.IsTyping("u2"), "writes after close are ignored")

	// let the armed timer fire against the closed store
	time.Sleep(60 * time.Millisecond)
}
