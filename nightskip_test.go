package slumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestComputeWakeupInstant(t *testing.T) {
	tests := []struct {
		name string
		now  string
		hour float32
		want string
	}{
		{"evening rolls over to next day", "2024-01-01T20:00:00Z", 6.5, "2024-01-02T06:30:00Z"},
		{"early morning stays on same day", "2024-01-01T03:00:00Z", 6.5, "2024-01-01T06:30:00Z"},
		{"exactly at wake-up time rolls over", "2024-01-01T06:30:00Z", 6.5, "2024-01-02T06:30:00Z"},
		{"one second before wake-up stays", "2024-01-01T06:29:59Z", 6.5, "2024-01-01T06:30:00Z"},
		{"quarter hours", "2024-03-10T22:10:00Z", 6.25, "2024-03-11T06:15:00Z"},
		{"late wake-up hour", "2024-01-01T12:00:00Z", 23.75, "2024-01-01T23:45:00Z"},
		{"midnight", "2024-12-31T23:00:00Z", 0, "2025-01-01T00:00:00Z"},
		{"month boundary", "2024-02-29T21:00:00Z", 6, "2024-03-01T06:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWakeupInstant(utc(t, tt.now), tt.hour)
			assert.Equal(t, utc(t, tt.want), got)
		})
	}
}

func TestComputeWakeupInstantTruncatesMinutes(t *testing.T) {
	// 0.99h is 59.4 minutes; the seconds are dropped.
	got := ComputeWakeupInstant(utc(t, "2024-01-01T00:00:00Z"), 6.99)
	assert.Equal(t, utc(t, "2024-01-01T06:59:00Z"), got)
}

func TestComputeWakeupInstantUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-01-02 08:00 in UTC+10 is 2024-01-01 22:00 UTC.
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, loc)
	got := ComputeWakeupInstant(now, 6.5)
	assert.Equal(t, utc(t, "2024-01-02T06:30:00Z"), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestComputeIrlSeconds(t *testing.T) {
	start := utc(t, "2024-01-01T00:00:00Z")
	tests := []struct {
		name string
		gap  time.Duration
		want float32
	}{
		{"no gap uses minimum", 0, 3},
		{"twelve hours uses minimum", 12 * time.Hour, 3},
		{"eighteen hours", 18 * time.Hour, 3},
		{"twenty hours rounds up", 20 * time.Hour, 4},
		{"partial hours are truncated", 23*time.Hour + 59*time.Minute, 4},
		{"thirty six hours", 36 * time.Hour, 6},
		{"thirty seven hours rounds up", 37 * time.Hour, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeIrlSeconds(start, start.Add(tt.gap)))
		})
	}
}

func TestSkipNightFromAwake(t *testing.T) {
	now := utc(t, "2024-01-01T20:00:00Z")

	st, ok := SkipNight(AwakeState, now, 6.5)
	require.True(t, ok)
	assert.Equal(t, now, st.Start)
	assert.Equal(t, utc(t, "2024-01-02T06:30:00Z"), st.Target)
	assert.Equal(t, float32(3), st.Seconds)
	assert.Zero(t, st.Progress)
}

func TestSkipNightNilStateIsAwake(t *testing.T) {
	_, ok := SkipNight(nil, utc(t, "2024-01-01T20:00:00Z"), 6)
	assert.True(t, ok)
}

func TestSkipNightWhileSlumberingIsNoop(t *testing.T) {
	first, ok := SkipNight(AwakeState, utc(t, "2024-01-01T20:00:00Z"), 6.5)
	require.True(t, ok)

	som := NewSomnolence()
	som.SetState(first)

	for _, now := range []string{"2024-01-01T20:00:01Z", "2024-01-01T23:00:00Z", "2024-01-02T05:00:00Z"} {
		_, ok := SkipNight(som.State(), utc(t, now), 9)
		assert.False(t, ok)
	}
	assert.Equal(t, first, som.State())
}
