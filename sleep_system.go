package slumber

import (
	"time"

	"github.com/df-mc/dragonfly/server/world"
)

// gameClock is the world clock the sleep and slumber systems work on.
// *Clock implements it.
type gameClock interface {
	GameTime() time.Time
	SetGameTime(t time.Time)
	DaylightCycle() bool
}

var _ gameClock = (*Clock)(nil)

// sessionRef is the PlayerRef of a session. The scheduler only hands
// systems sessions whose player is in the world's transaction.
type sessionRef struct {
	sess *Session
}

// Movement returns the session's MovementStates.
func (r sessionRef) Movement() (MovementStates, bool) {
	m := Get[MovementStates](r.sess)
	if m == nil {
		return MovementStates{}, false
	}
	return *m, true
}

// SleepSystem starts skipping the night once players of the world sleep
// and the world allows it. It only ever moves a world from Awake to
// Slumbering; SlumberSystem moves it back.
type SleepSystem struct {
	Tx         *world.Tx
	World      *world.World
	Manager    *Manager
	Sessions   []*Session
	Somnolence *Somnolence `slumber:"res,mut"`
	Clock      *Clock      `slumber:"res"`
	Config     *Config     `slumber:"res"`

	_ Without[Sleepless]
}

func (s *SleepSystem) Run() {
	refs := make([]PlayerRef, len(s.Sessions))
	for i, sess := range s.Sessions {
		refs[i] = sessionRef{sess: sess}
	}

	startSlumber(s.Somnolence, s.Clock, *s.Config, refs, func(next Slumbering, sleeping []PlayerRef) {
		sleepers := make([]*Session, 0, len(sleeping))
		for _, ref := range sleeping {
			sleepers = append(sleepers, ref.(sessionRef).sess)
		}

		s.Manager.log.Info("slumber: skipping night",
			"world", s.World.Name(),
			"sleeping", len(sleepers),
			"from", next.Start.Format(time.TimeOnly),
			"to", next.Target.Format(time.TimeOnly),
			"seconds", next.Seconds)

		s.Manager.notifySlumber(&SlumberEvent{
			Tx:       s.Tx,
			Sessions: s.Manager.AllSessionsInWorld(s.World),
			Sleeping: sleepers,
			State:    next,
		})
	})
}

// startSlumber evaluates the world and, if the night is to be skipped,
// writes the Slumbering state to som and then calls started with it and the
// sleeping players. It reports whether the state was written.
func startSlumber(som *Somnolence, clock gameClock, conf Config, refs []PlayerRef, started func(Slumbering, []PlayerRef)) bool {
	now := clock.GameTime()
	next, sleeping, ok := evaluate(Snapshot{
		Players:    refs,
		State:      som.State(),
		Now:        now,
		WakeUpHour: conf.WakeUpHour,
		CanSleep: func(sleeping []PlayerRef) SleepCheck {
			return CanSleepInWorld(SleepConditions{
				Config:        conf,
				DaylightCycle: clock.DaylightCycle(),
				Hour:          HourOfDay(now),
				Sleeping:      len(sleeping),
				Eligible:      len(refs),
			})
		},
	})
	if !ok {
		return false
	}
	som.SetState(next)
	if started != nil {
		started(next, sleeping)
	}
	return true
}
