package transport

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mohammadHusnain/skillswap-realtime/internal/protocol"
)

// ErrNotOpen is returned when a frame is sent on a channel that has no open
// connection behind it.
var ErrNotOpen = errors.New("transport not open")

// Options control one channel's timers and limits.
type Options struct {
	PingInterval   time.Duration
	WriteDeadline  time.Duration
	MaxMessageSize int64
	ReconnectDelay time.Duration
	// MaxReconnect switches the supervisor to exponential backoff capped at
	// this interval when it exceeds ReconnectDelay. Zero keeps the fixed
	// 3-second retry the backend contract assumes.
	MaxReconnect time.Duration
}

func (o *Options) defaults() {
	if o.PingInterval == 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteDeadline == 0 {
		o.WriteDeadline = 10 * time.Second
	}
	if o.ReconnectDelay == 0 {
		o.ReconnectDelay = 3 * time.Second
	}
}

// channel wraps one open connection: a read pump delivering frames upward
// and a heartbeat ticker emitting app-level ping frames. Writes are
// serialized behind a mutex since the underlying conn allows one writer.
type channel struct {
	conn Conn
	opts Options
	log  *zap.SugaredLogger

	onFrame func([]byte)
	onClose func(err error, clean bool)

	writeMu  sync.Mutex
	done     chan struct{}
	explicit bool
	once     sync.Once
}

func newChannel(conn Conn, opts Options, log *zap.SugaredLogger, onFrame func([]byte), onClose func(err error, clean bool)) *channel {
	c := &channel{
		conn:    conn,
		opts:    opts,
		log:     log,
		onFrame: onFrame,
		onClose: onClose,
		done:    make(chan struct{}),
	}
	if opts.MaxMessageSize > 0 {
		conn.SetReadLimit(opts.MaxMessageSize)
	}
	go c.readPump()
	go c.heartbeat()
	return c
}

func (c *channel) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	select {
	case <-c.done:
		return ErrNotOpen
	default:
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteDeadline))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Close tears the connection down on behalf of the caller; the supervisor
// sees a clean closure and schedules no retry.
func (c *channel) Close() {
	c.shutdown(nil, true)
}

func (c *channel) shutdown(err error, explicit bool) {
	c.once.Do(func() {
		c.explicit = explicit
		close(c.done)
		_ = c.conn.Close()
		c.onClose(err, explicit)
	})
}

func (c *channel) readPump() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err, false)
			return
		}
		c.onFrame(data)
	}
}

// heartbeat emits an app-level ping frame on a fixed interval while the
// connection is open. The pong response is swallowed by the dispatcher;
// liveness loss is detected by the transport closing, not by pong absence.
func (c *channel) heartbeat() {
	if c.opts.PingInterval <= 0 {
		return
	}
	t := time.NewTicker(c.opts.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			if err := c.Send(protocol.NewPing()); err != nil {
				if !errors.Is(err, ErrNotOpen) {
					c.log.Warnf("heartbeat send failed: %v", err)
				}
				return
			}
		}
	}
}
