package slumber

import "time"

// PlayerRef is a reference to a connected player that may resolve to the
// player's movement state. ok is false if the player has no entity or no
// movement data, in which case the player is treated as awake.
type PlayerRef interface {
	Movement() (m MovementStates, ok bool)
}

// Snapshot is the view of a world the sleep monitor decides on.
type Snapshot struct {
	// Players are the eligible players of the world.
	Players []PlayerRef
	// State is the world's current sleep state.
	State SleepState
	// Now is the world's current game time.
	Now time.Time
	// WakeUpHour is the configured wake-up hour.
	WakeUpHour float32
	// CanSleep is the world's sleep eligibility predicate. It is only
	// called when at least one player sleeps. A nil CanSleep allows sleep.
	CanSleep func(sleeping []PlayerRef) SleepCheck
}

// CollectSleeping returns the players whose movement state says they are
// sleeping, in the order given.
func CollectSleeping(players []PlayerRef) []PlayerRef {
	var sleeping []PlayerRef
	for _, ref := range players {
		if ref == nil {
			continue
		}
		m, ok := ref.Movement()
		if !ok || !m.Sleeping {
			continue
		}
		sleeping = append(sleeping, ref)
	}
	return sleeping
}

// Evaluate decides whether the world in s should start skipping the night,
// returning the Slumbering state to write if so. Evaluate has no side effects.
func Evaluate(s Snapshot) (Slumbering, bool) {
	next, _, ok := evaluate(s)
	return next, ok
}

// evaluate is Evaluate that also returns the sleeping players it found.
func evaluate(s Snapshot) (Slumbering, []PlayerRef, bool) {
	sleeping := CollectSleeping(s.Players)
	if len(sleeping) == 0 {
		return Slumbering{}, nil, false
	}
	if s.CanSleep != nil && s.CanSleep(sleeping).Negative() {
		return Slumbering{}, sleeping, false
	}
	next, ok := SkipNight(s.State, s.Now, s.WakeUpHour)
	return next, sleeping, ok
}
