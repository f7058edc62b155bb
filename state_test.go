package slumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSomnolenceStartsAwake(t *testing.T) {
	som := NewSomnolence()
	assert.True(t, IsAwake(som.State()))
	assert.Equal(t, AwakeState, som.State())
}

func TestSomnolenceSetState(t *testing.T) {
	som := NewSomnolence()
	st := Slumbering{Seconds: 3}

	som.SetState(st)
	assert.Equal(t, st, som.State())
	assert.False(t, IsAwake(som.State()))

	som.SetState(nil)
	assert.True(t, IsAwake(som.State()))
}

func TestZeroSomnolenceIsAwake(t *testing.T) {
	var som Somnolence
	assert.True(t, IsAwake(som.State()))
}

func TestSlumberingGameTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	st := Slumbering{
		Start:   start,
		Target:  start.Add(10 * time.Hour),
		Seconds: 4,
	}

	assert.Equal(t, start, st.GameTime())

	st.Progress = 1
	assert.Equal(t, start.Add(150*time.Minute), st.GameTime())

	st.Progress = 2
	assert.Equal(t, start.Add(5*time.Hour), st.GameTime())

	st.Progress = 10
	assert.Equal(t, st.Target, st.GameTime())
	assert.Equal(t, 1.0, st.Fraction())
}

func TestSlumberingZeroSecondsIsComplete(t *testing.T) {
	st := Slumbering{Target: time.Unix(100, 0)}
	assert.Equal(t, 1.0, st.Fraction())
	assert.Equal(t, st.Target, st.GameTime())
}

func TestSlumberingAdvance(t *testing.T) {
	st := Slumbering{Seconds: 3}

	var done bool
	for i := 0; i < 59; i++ {
		st, done = st.Advance(50 * time.Millisecond)
		assert.False(t, done, "tick %d", i)
	}
	st, done = st.Advance(time.Second)
	assert.True(t, done)
	assert.InDelta(t, 3.95, st.Progress, 1e-3)
}
