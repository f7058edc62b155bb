package slumber

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// MovementStates is the component holding a player's movement flags as of
// the current tick. MovementSystem keeps it up to date.
type MovementStates struct {
	// Sleeping is set through SetSleeping. Dragonfly has no beds, so it is
	// the one flag MovementSystem does not sample from the player.
	Sleeping  bool
	Sneaking  bool
	Sprinting bool
	Swimming  bool
	Flying    bool
	OnGround  bool

	// Position is the player's position.
	Position mgl64.Vec3
}

// Sleepless is a marker component excluding a session from the players
// the sleep monitor counts. Other plugins may add it, e.g. for AFK players.
type Sleepless struct {
	// Reason describes why the player is excluded.
	Reason string
}

// SleeplessSpectator is the Sleepless reason MovementSystem manages.
const SleeplessSpectator = "spectator"

// SetSleeping puts the session's player to bed or gets it out of bed.
// It must be called from the player's world transaction, e.g. from a
// command, a handler or a system.
func SetSleeping(s *Session, sleeping bool) {
	if s == nil {
		return
	}
	if m := Get[MovementStates](s); m != nil {
		m.Sleeping = sleeping
		return
	}
	if sleeping {
		Add(s, &MovementStates{Sleeping: true})
	}
}

// IsSleeping reports whether the session's player is asleep.
func IsSleeping(s *Session) bool {
	m := Get[MovementStates](s)
	return m != nil && m.Sleeping
}

// movementSource is the part of a player MovementStates is sampled from.
type movementSource interface {
	Sneaking() bool
	Sprinting() bool
	Swimming() bool
	Flying() bool
	OnGround() bool
	Position() mgl64.Vec3
}

// sampleMovement reads the movement states of src on top of prev. The
// sleeping flag carries over from prev; sneaking gets the player out of bed
// as it does in vanilla.
func sampleMovement(src movementSource, prev MovementStates) MovementStates {
	m := MovementStates{
		Sleeping:  prev.Sleeping,
		Sneaking:  src.Sneaking(),
		Sprinting: src.Sprinting(),
		Swimming:  src.Swimming(),
		Flying:    src.Flying(),
		OnGround:  src.OnGround(),
		Position:  src.Position(),
	}
	if m.Sneaking && !prev.Sneaking {
		m.Sleeping = false
	}
	return m
}

// MovementSystem refreshes the MovementStates of every player and keeps the
// Sleepless marker of spectators in sync with their game mode.
type MovementSystem struct {
	Tx       *world.Tx
	Sessions []*Session
}

func (s *MovementSystem) Run() {
	for _, sess := range s.Sessions {
		p, ok := sess.Player(s.Tx)
		if !ok {
			continue
		}
		refreshMovement(sess, p)
		syncSpectator(sess, p.GameMode() == world.GameModeSpectator)
	}
}

// refreshMovement samples src into the session's MovementStates.
func refreshMovement(sess *Session, src movementSource) {
	if m := Get[MovementStates](sess); m != nil {
		*m = sampleMovement(src, *m)
		return
	}
	m := sampleMovement(src, MovementStates{})
	Add(sess, &m)
}

// syncSpectator adds or removes the spectator Sleepless marker. Markers
// with other reasons are left alone.
func syncSpectator(sess *Session, spectator bool) {
	sl := Get[Sleepless](sess)
	switch {
	case spectator && sl == nil:
		Add(sess, &Sleepless{Reason: SleeplessSpectator})
	case !spectator && sl != nil && sl.Reason == SleeplessSpectator:
		Remove[Sleepless](sess)
	}
}
