package transport

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/mohammadHusnain/skillswap-realtime/internal/auth"
)

// State of a supervised endpoint connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateRetrying
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateRetrying:
		return "retrying"
	default:
		return "disconnected"
	}
}

// Supervisor owns the lifecycle of one endpoint's connection. Open is
// idempotent while a connection is up; any non-clean closure schedules a
// reconnect, cancelling a prior pending attempt so at most one timer is
// armed per endpoint. Close cancels everything and suppresses the retry.
type Supervisor struct {
	endpoint string
	dialer   Dialer
	tokens   auth.TokenProvider
	opts     Options
	log      *zap.SugaredLogger

	onFrame func([]byte)
	onState func(State)

	mu     sync.Mutex
	ch     *channel
	retry  *time.Timer
	closed bool
	policy backoff.BackOff
}

// NewSupervisor builds a supervisor for one endpoint URL (credential is
// appended at connect time). The retry policy is a fixed delay unless
// MaxReconnect enables the capped exponential variant.
func NewSupervisor(endpoint string, dialer Dialer, tokens auth.TokenProvider, opts Options, log *zap.SugaredLogger, onFrame func([]byte), onState func(State)) *Supervisor {
	opts.defaults()
	var policy backoff.BackOff
	if opts.MaxReconnect > opts.ReconnectDelay {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = opts.ReconnectDelay
		eb.MaxInterval = opts.MaxReconnect
		eb.MaxElapsedTime = 0 // retry indefinitely
		policy = eb
	} else {
		policy = backoff.NewConstantBackOff(opts.ReconnectDelay)
	}
	if onState == nil {
		onState = func(State) {}
	}
	return &Supervisor{
		endpoint: endpoint,
		dialer:   dialer,
		tokens:   tokens,
		opts:     opts,
		log:      log,
		onFrame:  onFrame,
		onState:  onState,
		policy:   policy,
	}
}

// Open connects the endpoint. A call while the connection is already open
// is a no-op. A failed dial schedules a retry and reports the error; the
// supervisor keeps trying until Close.
func (s *Supervisor) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if s.ch != nil {
		s.mu.Unlock()
		return nil
	}
	s.cancelRetryLocked()
	s.mu.Unlock()
	return s.connect(ctx)
}

func (s *Supervisor) connect(ctx context.Context) error {
	tok, err := s.tokens.Token()
	if err != nil {
		s.log.Warnf("connect %s: %v", s.endpoint, err)
		s.scheduleRetry()
		return err
	}
	s.onState(StateConnecting)
	conn, err := s.dialer.Dial(ctx, s.endpoint+"?token="+url.QueryEscape(tok))
	if err != nil {
		s.log.Warnf("dial %s: %v", s.endpoint, err)
		s.scheduleRetry()
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return ErrNotOpen
	}
	s.ch = newChannel(conn, s.opts, s.log, s.onFrame, s.handleClose)
	s.mu.Unlock()

	s.policy.Reset()
	s.onState(StateOpen)
	return nil
}

func (s *Supervisor) handleClose(err error, clean bool) {
	s.mu.Lock()
	s.ch = nil
	closed := s.closed
	s.mu.Unlock()

	if clean || closed {
		s.onState(StateDisconnected)
		return
	}
	if err != nil {
		s.log.Warnf("transport %s closed: %v", s.endpoint, err)
	}
	s.scheduleRetry()
}

func (s *Supervisor) scheduleRetry() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelRetryLocked()
	d := s.policy.NextBackOff()
	if d == backoff.Stop {
		d = s.opts.ReconnectDelay
	}
	s.retry = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed || s.ch != nil {
			s.mu.Unlock()
			return
		}
		s.retry = nil
		s.mu.Unlock()
		_ = s.connect(context.Background())
	})
	s.mu.Unlock()
	s.onState(StateRetrying)
}

func (s *Supervisor) cancelRetryLocked() {
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}
}

// Send enqueues a frame on the open connection.
func (s *Supervisor) Send(v any) error {
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()
	if ch == nil {
		return ErrNotOpen
	}
	return ch.Send(v)
}

// Connected reports whether a connection is currently open.
func (s *Supervisor) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch != nil
}

// Close tears the connection down and cancels any pending reconnect. The
// supervisor cannot be reused afterwards.
func (s *Supervisor) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancelRetryLocked()
	ch := s.ch
	s.mu.Unlock()
	if ch != nil {
		ch.Close()
	} else {
		s.onState(StateDisconnected)
	}
}
