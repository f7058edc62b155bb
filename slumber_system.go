package slumber

import (
	"time"

	"github.com/df-mc/dragonfly/server/world"
)

// SlumberSystem fast-forwards the clock of a slumbering world towards the
// wake-up time and, once it is reached, wakes the players and returns the
// world to Awake.
type SlumberSystem struct {
	Tx         *world.Tx
	World      *world.World
	Manager    *Manager
	Tick       *Tick
	Somnolence *Somnolence `slumber:"res,mut"`
	Clock      *Clock      `slumber:"res"`
}

func (s *SlumberSystem) Run() {
	advanceSlumber(s.Somnolence, s.Clock, s.Tick.Delta, func(done Slumbering) {
		sessions := s.Manager.AllSessionsInWorld(s.World)
		woken := wakeAll(sessions)

		s.Manager.log.Info("slumber: night skipped",
			"world", s.World.Name(),
			"time", done.Target.Format(time.TimeOnly),
			"woken", woken)

		s.Manager.notifyWake(&WakeEvent{
			Tx:       s.Tx,
			Sessions: sessions,
			State:    done,
		})
	})
}

// advanceSlumber moves a slumbering world dt further towards its target,
// setting the clock to the interpolated game time. Once the target is
// reached the clock is set to it, som returns to Awake and woke is called
// with the finished slumber. It reports whether the world woke up.
func advanceSlumber(som *Somnolence, clock gameClock, dt time.Duration, woke func(Slumbering)) bool {
	st, ok := som.State().(Slumbering)
	if !ok {
		return false
	}

	next, done := st.Advance(dt)
	if !done {
		som.SetState(next)
		clock.SetGameTime(next.GameTime())
		return false
	}

	clock.SetGameTime(next.Target)
	som.SetState(AwakeState)
	if woke != nil {
		woke(next)
	}
	return true
}

// wakeAll gets every sleeping player of sessions out of bed and returns how
// many were woken.
func wakeAll(sessions []*Session) int {
	var woken int
	for _, sess := range sessions {
		if !IsSleeping(sess) {
			continue
		}
		SetSleeping(sess, false)
		woken++
	}
	return woken
}
