package slumber

import (
	"math"
	"time"
)

const (
	// minSlumberSeconds is the shortest real-time fast-forward.
	minSlumberSeconds = 3.0
	// gameHoursPerSecond is how many skipped game hours one real second covers.
	gameHoursPerSecond = 6.0
)

// ComputeWakeupInstant returns the first instant after now, in UTC, whose
// time of day equals wakeUpHour. The fractional part of wakeUpHour is
// truncated to whole minutes. An instant exactly at the wake-up time rolls
// over to the next day.
//
// wakeUpHour is expected to be in [0, 24); values outside that range are
// normalised by time.Date and yield no meaningful wake-up time.
func ComputeWakeupInstant(now time.Time, wakeUpHour float32) time.Time {
	now = now.UTC()

	hours := int(wakeUpHour)
	minutes := int((wakeUpHour - float32(hours)) * 60)

	y, m, d := now.Date()
	wake := time.Date(y, m, d, hours, minutes, 0, 0, time.UTC)
	if !now.Before(wake) {
		wake = wake.AddDate(0, 0, 1)
	}
	return wake
}

// ComputeIrlSeconds returns the real-world number of seconds a skip from
// start to target takes: one second per six whole game hours, never less
// than three, rounded up.
func ComputeIrlSeconds(start, target time.Time) float32 {
	ms := target.Sub(start).Milliseconds()
	hours := ms / time.Hour.Milliseconds()
	seconds := math.Max(minSlumberSeconds, float64(hours)/gameHoursPerSecond)
	return float32(math.Ceil(seconds))
}

// SkipNight computes the Slumbering state that skips the night starting at
// now. It returns false without computing anything if current is not Awake,
// so a slumber in progress is never restarted.
func SkipNight(current SleepState, now time.Time, wakeUpHour float32) (Slumbering, bool) {
	if !IsAwake(current) {
		return Slumbering{}, false
	}

	target := ComputeWakeupInstant(now, wakeUpHour)
	return Slumbering{
		Start:   now,
		Target:  target,
		Seconds: ComputeIrlSeconds(now, target),
	}, true
}
