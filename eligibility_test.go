package slumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSleepInWorld(t *testing.T) {
	base := SleepConditions{
		Config:        DefaultConfig(),
		DaylightCycle: true,
		Hour:          22,
		Sleeping:      1,
		Eligible:      4,
	}

	tests := []struct {
		name   string
		modify func(c *SleepConditions)
		want   SleepCheck
	}{
		{"allowed", func(*SleepConditions) {}, SleepAllowed},
		{"disabled", func(c *SleepConditions) { c.Config.Enabled = false }, SleepDisabled},
		{"no daylight cycle", func(c *SleepConditions) { c.DaylightCycle = false }, SleepNoDaylightCycle},
		{"midday", func(c *SleepConditions) { c.Hour = 12 }, SleepNotNight},
		{"just before sleep start", func(c *SleepConditions) { c.Hour = 18.4 }, SleepNotNight},
		{"at sleep start", func(c *SleepConditions) { c.Hour = 18.5 }, SleepAllowed},
		{"after midnight", func(c *SleepConditions) { c.Hour = 2 }, SleepAllowed},
		{"at wake-up hour", func(c *SleepConditions) { c.Hour = 6 }, SleepNotNight},
		{"nobody sleeping", func(c *SleepConditions) { c.Sleeping = 0 }, SleepNotEnoughSleepers},
		{"below percentage", func(c *SleepConditions) { c.Config.SleepPercentage = 50 }, SleepNotEnoughSleepers},
		{"meets percentage", func(c *SleepConditions) {
			c.Config.SleepPercentage = 50
			c.Sleeping = 2
		}, SleepAllowed},
		{"everyone required", func(c *SleepConditions) {
			c.Config.SleepPercentage = 100
			c.Sleeping = 3
		}, SleepNotEnoughSleepers},
		{"disabled wins over other checks", func(c *SleepConditions) {
			c.Config.Enabled = false
			c.DaylightCycle = false
			c.Hour = 12
		}, SleepDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.modify(&c)
			assert.Equal(t, tt.want, CanSleepInWorld(c))
		})
	}
}

func TestInNightWindow(t *testing.T) {
	// Window within a single day.
	assert.True(t, inNightWindow(3, 1, 5))
	assert.True(t, inNightWindow(1, 1, 5))
	assert.False(t, inNightWindow(5, 1, 5))
	assert.False(t, inNightWindow(23, 1, 5))

	// Window wrapping past midnight.
	assert.True(t, inNightWindow(23.9, 20, 6))
	assert.True(t, inNightWindow(0, 20, 6))
	assert.False(t, inNightWindow(6, 20, 6))
	assert.False(t, inNightWindow(19.99, 20, 6))

	// Equal bounds cover the whole day.
	assert.True(t, inNightWindow(12, 6, 6))
}

func TestSleepCheckNegative(t *testing.T) {
	assert.False(t, SleepAllowed.Negative())
	assert.True(t, SleepNotNight.Negative())
	assert.Equal(t, "NotEnoughSleepers", SleepNotEnoughSleepers.String())
	assert.Equal(t, "Unknown", SleepCheck(42).String())
}
