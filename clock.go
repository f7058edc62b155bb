package slumber

import (
	"time"

	"github.com/df-mc/dragonfly/server/world"
)

const (
	// TicksPerDay is the length of a Minecraft day in world ticks.
	TicksPerDay = 24000
	// tickDuration is the game time a single world tick represents.
	tickDuration = 24 * time.Hour / TicksPerDay
	// dayStartOffset is the time of day at tick 0 (sunrise).
	dayStartOffset = 6 * time.Hour
)

// gameEpoch is the instant day zero of every world starts at.
var gameEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// TicksToInstant converts a world time in ticks to an absolute game instant.
// Tick 0 is 06:00 on day zero.
func TicksToInstant(ticks int) time.Time {
	return gameEpoch.Add(dayStartOffset + time.Duration(ticks)*tickDuration)
}

// InstantToTicks converts a game instant back to a world time in ticks,
// truncating to the tick at or before t.
func InstantToTicks(t time.Time) int {
	return int((t.Sub(gameEpoch) - dayStartOffset) / tickDuration)
}

// HourOfDay returns the UTC time of day of t in fractional hours.
func HourOfDay(t time.Time) float32 {
	h, m, s := t.UTC().Clock()
	return float32(h) + float32(m)/60 + float32(s)/3600
}

// worldTime is the part of a *world.World a Clock reads and writes.
type worldTime interface {
	Time() int
	SetTime(int)
	Dimension() world.Dimension
	TimeCycle() bool
}

// Clock is the world resource reading and writing a world's game time.
type Clock struct {
	w worldTime
}

// NewClock returns a Clock for w.
func NewClock(w *world.World) *Clock {
	return &Clock{w: w}
}

// GameTime returns the world's current game time.
func (c *Clock) GameTime() time.Time {
	return TicksToInstant(c.w.Time())
}

// SetGameTime moves the world's clock to t.
func (c *Clock) SetGameTime(t time.Time) {
	c.w.SetTime(InstantToTicks(t))
}

// DaylightCycle reports whether the world has a running day/night cycle to
// skip. Worlds whose time is stopped never skip the night.
func (c *Clock) DaylightCycle() bool {
	return c.w.Dimension() == world.Overworld && c.w.TimeCycle()
}
