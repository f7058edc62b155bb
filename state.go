package slumber

import (
	"sync"
	"time"
)

// SleepState is the sleep state of a world. It is either Awake or Slumbering.
type SleepState interface {
	sleepState()
}

// Awake is the state of a world in which nobody is skipping the night.
type Awake struct{}

// AwakeState is the single Awake value.
var AwakeState SleepState = Awake{}

func (Awake) sleepState() {}

// Slumbering is the state of a world whose clock is being fast-forwarded
// from Start to Target over Seconds of real time.
type Slumbering struct {
	// Start is the game time at which the slumber began.
	Start time.Time
	// Target is the game time at which players wake up.
	Target time.Time
	// Seconds is the real-world duration of the fast-forward.
	Seconds float32
	// Progress is the number of real seconds elapsed since the slumber began.
	Progress float32
}

func (Slumbering) sleepState() {}

// Fraction returns how far the slumber has progressed, in [0, 1].
func (s Slumbering) Fraction() float64 {
	if s.Seconds <= 0 {
		return 1
	}
	f := float64(s.Progress) / float64(s.Seconds)
	return min(max(f, 0), 1)
}

// GameTime returns the game time the world should show at the current progress.
func (s Slumbering) GameTime() time.Time {
	span := s.Target.Sub(s.Start)
	return s.Start.Add(time.Duration(float64(span) * s.Fraction()))
}

// Advance returns the slumber with dt of real time added to its progress,
// and whether the fast-forward has reached its target.
func (s Slumbering) Advance(dt time.Duration) (Slumbering, bool) {
	s.Progress += float32(dt.Seconds())
	return s, s.Progress >= s.Seconds
}

// IsAwake reports whether st is the Awake state. A nil state counts as awake.
func IsAwake(st SleepState) bool {
	if st == nil {
		return true
	}
	_, ok := st.(Awake)
	return ok
}

// Somnolence is the world resource holding the world's SleepState.
// Systems write it from inside the world's transaction; other goroutines
// may read it concurrently.
type Somnolence struct {
	mu    sync.RWMutex
	state SleepState
}

// NewSomnolence returns a Somnolence in the Awake state.
func NewSomnolence() *Somnolence {
	return &Somnolence{state: AwakeState}
}

// State returns the current sleep state.
func (s *Somnolence) State() SleepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return AwakeState
	}
	return s.state
}

// SetState replaces the current sleep state.
func (s *Somnolence) SetState(st SleepState) {
	if st == nil {
		st = AwakeState
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
