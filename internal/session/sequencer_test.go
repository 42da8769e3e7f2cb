package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSequencerDefaults(t *testing.T) {
	s := NewSequencer(0)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, uint64(0), s.Version())

	ticket := s.Arm()
	assert.Equal(t, DefaultDebounce, ticket.Delay)
	assert.Equal(t, StateDebouncing, s.State())
}

func TestSequencerOnlyLastTicketFires(t *testing.T) {
	s := NewSequencer(10 * time.Millisecond)
	tickets := []Ticket{s.Arm(), s.Arm(), s.Arm()}

	var fired []uint64
	for _, tk := range tickets {
		if s.Fire(tk) == StatePending {
			fired = append(fired, tk.Version)
		}
	}
	assert.Equal(t, []uint64{3}, fired)
	assert.Equal(t, StatePending, s.State())
}

func TestSequencerTicketFiresOnce(t *testing.T) {
	s := NewSequencer(0)
	tk := s.Arm()
	assert.Equal(t, StatePending, s.Fire(tk))
	assert.Equal(t, StateSuperseded, s.Fire(tk))
}

func TestSequencerResolveRequiresExactVersion(t *testing.T) {
	s := NewSequencer(0)
	v1 := s.Dispatch()
	v2 := s.Dispatch()

	assert.Equal(t, StateSuperseded, s.Resolve(v1))
	assert.Equal(t, StateSettled, s.Resolve(v2))
	// A late duplicate of the settled request is ignored too.
	assert.Equal(t, StateSuperseded, s.Resolve(v2))
}

func TestSequencerAnyIntentInvalidatesInFlight(t *testing.T) {
	s := NewSequencer(0)
	v := s.Dispatch()
	s.Arm()
	assert.Equal(t, StateSuperseded, s.Resolve(v))
	assert.Equal(t, StateDebouncing, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "debouncing", StateDebouncing.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "settled", StateSettled.String())
	assert.Equal(t, "superseded", StateSuperseded.String())
	assert.Equal(t, "unknown", State(42).String())
}
