package slumber

// SleepCheck is the outcome of CanSleepInWorld.
type SleepCheck int

const (
	// SleepAllowed means the night may be skipped.
	SleepAllowed SleepCheck = iota
	// SleepDisabled means night skipping is turned off for the world.
	SleepDisabled
	// SleepNoDaylightCycle means the world has no night to skip.
	SleepNoDaylightCycle
	// SleepNotNight means the time of day is outside the sleep window.
	SleepNotNight
	// SleepNotEnoughSleepers means too few eligible players are sleeping.
	SleepNotEnoughSleepers
)

// Negative reports whether the check forbids skipping the night.
func (c SleepCheck) Negative() bool {
	return c != SleepAllowed
}

// String returns the string representation of the check.
func (c SleepCheck) String() string {
	switch c {
	case SleepAllowed:
		return "Allowed"
	case SleepDisabled:
		return "Disabled"
	case SleepNoDaylightCycle:
		return "NoDaylightCycle"
	case SleepNotNight:
		return "NotNight"
	case SleepNotEnoughSleepers:
		return "NotEnoughSleepers"
	default:
		return "Unknown"
	}
}

// SleepConditions is the world state CanSleepInWorld decides on.
type SleepConditions struct {
	Config        Config
	DaylightCycle bool
	// Hour is the current time of day in fractional hours.
	Hour float32
	// Sleeping and Eligible count the sleeping and the eligible players.
	Sleeping int
	Eligible int
}

// CanSleepInWorld reports whether the world described by in may skip the night.
func CanSleepInWorld(in SleepConditions) SleepCheck {
	if !in.Config.Enabled {
		return SleepDisabled
	}
	if !in.DaylightCycle {
		return SleepNoDaylightCycle
	}
	if !inNightWindow(in.Hour, in.Config.SleepStartHour, in.Config.WakeUpHour) {
		return SleepNotNight
	}
	if !enoughSleepers(in.Sleeping, in.Eligible, in.Config.SleepPercentage) {
		return SleepNotEnoughSleepers
	}
	return SleepAllowed
}

// inNightWindow reports whether hour lies in [start, wake), wrapping
// around midnight when start is after wake. Equal bounds cover the whole day.
func inNightWindow(hour, start, wake float32) bool {
	switch {
	case start == wake:
		return true
	case start < wake:
		return hour >= start && hour < wake
	default:
		return hour >= start || hour < wake
	}
}

// enoughSleepers reports whether sleeping out of eligible meets percentage.
func enoughSleepers(sleeping, eligible, percentage int) bool {
	if sleeping <= 0 {
		return false
	}
	if percentage <= 0 || eligible <= 0 {
		return true
	}
	return sleeping*100 >= eligible*percentage
}
