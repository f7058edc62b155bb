package slumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRef is a PlayerRef with fixed movement data.
type fakeRef struct {
	m  MovementStates
	ok bool
}

func (r fakeRef) Movement() (MovementStates, bool) { return r.m, r.ok }

var (
	asleep     = fakeRef{m: MovementStates{Sleeping: true}, ok: true}
	awake      = fakeRef{m: MovementStates{OnGround: true}, ok: true}
	unresolved = fakeRef{m: MovementStates{Sleeping: true}, ok: false}
)

func night(t *testing.T) time.Time {
	return utc(t, "2024-01-01T20:00:00Z")
}

func TestCollectSleeping(t *testing.T) {
	players := []PlayerRef{awake, asleep, nil, unresolved, asleep}
	sleeping := CollectSleeping(players)
	assert.Equal(t, []PlayerRef{asleep, asleep}, sleeping)
	assert.Empty(t, CollectSleeping(nil))
}

func TestEvaluateStartsSlumber(t *testing.T) {
	var calledWith []PlayerRef
	st, ok := Evaluate(Snapshot{
		Players:    []PlayerRef{awake, asleep},
		State:      AwakeState,
		Now:        night(t),
		WakeUpHour: 6.5,
		CanSleep: func(sleeping []PlayerRef) SleepCheck {
			calledWith = sleeping
			return SleepAllowed
		},
	})
	require.True(t, ok)
	assert.Equal(t, []PlayerRef{asleep}, calledWith)
	assert.Equal(t, night(t), st.Start)
	assert.Equal(t, utc(t, "2024-01-02T06:30:00Z"), st.Target)
	assert.Equal(t, float32(3), st.Seconds)
}

func TestEvaluateNoSleepers(t *testing.T) {
	called := false
	_, ok := Evaluate(Snapshot{
		Players:    []PlayerRef{awake, unresolved, nil},
		State:      AwakeState,
		Now:        night(t),
		WakeUpHour: 6,
		CanSleep: func([]PlayerRef) SleepCheck {
			called = true
			return SleepAllowed
		},
	})
	assert.False(t, ok)
	assert.False(t, called, "predicate must not run without sleepers")
}

func TestEvaluateNoPlayers(t *testing.T) {
	_, ok := Evaluate(Snapshot{State: AwakeState, Now: night(t), WakeUpHour: 6})
	assert.False(t, ok)
}

func TestEvaluateNegativePredicate(t *testing.T) {
	for _, check := range []SleepCheck{SleepDisabled, SleepNoDaylightCycle, SleepNotNight, SleepNotEnoughSleepers} {
		t.Run(check.String(), func(t *testing.T) {
			_, ok := Evaluate(Snapshot{
				Players:    []PlayerRef{asleep},
				State:      AwakeState,
				Now:        night(t),
				WakeUpHour: 6,
				CanSleep:   func([]PlayerRef) SleepCheck { return check },
			})
			assert.False(t, ok)
		})
	}
}

func TestEvaluateNilPredicateAllows(t *testing.T) {
	_, ok := Evaluate(Snapshot{
		Players:    []PlayerRef{asleep},
		State:      AwakeState,
		Now:        night(t),
		WakeUpHour: 6,
	})
	assert.True(t, ok)
}

func TestEvaluateWhileSlumbering(t *testing.T) {
	_, ok := Evaluate(Snapshot{
		Players:    []PlayerRef{asleep, asleep},
		State:      Slumbering{Seconds: 3, Progress: 1},
		Now:        night(t),
		WakeUpHour: 6,
		CanSleep:   func([]PlayerRef) SleepCheck { return SleepAllowed },
	})
	assert.False(t, ok)
}

func TestEvaluateReturnsSleepers(t *testing.T) {
	calls := 0
	_, sleeping, ok := evaluate(Snapshot{
		Players:    []PlayerRef{awake, asleep, unresolved},
		State:      AwakeState,
		Now:        night(t),
		WakeUpHour: 6,
		CanSleep: func(s []PlayerRef) SleepCheck {
			calls++
			return SleepAllowed
		},
	})
	assert.True(t, ok)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []PlayerRef{asleep}, sleeping)
}
