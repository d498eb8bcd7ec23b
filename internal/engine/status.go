package engine

// Status describes the active conversation's connection lifecycle.
type Status int

const (
	// StatusIdle: no conversation selected.
	StatusIdle Status = iota
	// StatusLoading: history fetch and dial in flight.
	StatusLoading
	// StatusLive: transport open and authenticated, events flowing.
	StatusLive
	// StatusReconnecting: abnormal closure, supervisor retry pending.
	StatusReconnecting
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLive:
		return "live"
	case StatusReconnecting:
		return "reconnecting"
	default:
		return "idle"
	}
}
