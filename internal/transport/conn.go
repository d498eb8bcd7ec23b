// Package transport owns the persistent websocket connection to one
// realtime endpoint: dialing, serialized writes, the app-level heartbeat,
// and supervised reconnection after abnormal closure.
package transport

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the slice of a websocket connection the channel needs. Satisfied
// by *websocket.Conn and by the in-memory fakes in tests.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Dialer opens a connection to a fully-formed endpoint URL.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WSDialer dials over gorilla/websocket.
type WSDialer struct {
	HandshakeTimeout time.Duration
}

func NewWSDialer() *WSDialer {
	return &WSDialer{HandshakeTimeout: 10 * time.Second}
}

func (d *WSDialer) Dial(ctx context.Context, url string) (Conn, error) {
	wd := websocket.Dialer{HandshakeTimeout: d.HandshakeTimeout}
	conn, resp, err := wd.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}
