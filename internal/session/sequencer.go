package session

import "time"

// DefaultDebounce is how long typing must be quiet before a search is sent.
const DefaultDebounce = 250 * time.Millisecond

// State is the lifecycle position of the most recent search intent.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StatePending
	StateSettled
	StateSuperseded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StatePending:
		return "pending"
	case StateSettled:
		return "settled"
	case StateSuperseded:
		return "superseded"
	}
	return "unknown"
}

// Ticket is a debounce timer armed for one version. Stale tickets still fire;
// Sequencer.Fire turns them into no-ops.
type Ticket struct {
	Version uint64
	Delay   time.Duration
}

// Sequencer owns the version nonce. Every intent bumps it, and timers or responses
// are only honoured when their captured version equals the current one.
type Sequencer struct {
	version  uint64
	state    State
	debounce time.Duration
}

// NewSequencer returns an idle sequencer; debounce <= 0 uses DefaultDebounce.
func NewSequencer(debounce time.Duration) *Sequencer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Sequencer{debounce: debounce}
}

// Version is the current nonce.
func (s *Sequencer) Version() uint64 {
	return s.version
}

// State is the lifecycle state of the current version.
func (s *Sequencer) State() State {
	return s.state
}

// Current reports whether v is still the latest intent.
func (s *Sequencer) Current(v uint64) bool {
	return v == s.version
}

// Arm records a new type-ahead intent and returns its debounce ticket.
func (s *Sequencer) Arm() Ticket {
	s.version++
	s.state = StateDebouncing
	return Ticket{Version: s.version, Delay: s.debounce}
}

// Fire is called when a ticket's timer elapses. It returns StatePending when the
// request should go out and StateSuperseded otherwise.
func (s *Sequencer) Fire(t Ticket) State {
	if !s.Current(t.Version) || s.state != StateDebouncing {
		return StateSuperseded
	}
	s.state = StatePending
	return StatePending
}

// Dispatch records a deliberate intent that skips the debounce window and returns
// the version the request must carry.
func (s *Sequencer) Dispatch() uint64 {
	s.version++
	s.state = StatePending
	return s.version
}

// Resolve is called when the response for version v arrives. It returns
// StateSettled when the payload may be applied and StateSuperseded otherwise.
func (s *Sequencer) Resolve(v uint64) State {
	if !s.Current(v) || s.state != StatePending {
		return StateSuperseded
	}
	s.state = StateSettled
	return StateSettled
}

// Settle marks the current version settled without a network round trip.
func (s *Sequencer) Settle() {
	s.state = StateSettled
}
