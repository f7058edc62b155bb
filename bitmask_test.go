package slumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmask(t *testing.T) {
	var m Bitmask
	assert.True(t, m.IsZero())

	m.Set(0)
	m.Set(5)
	m.Set(63)
	assert.True(t, m.Has(0))
	assert.True(t, m.Has(63))
	assert.False(t, m.Has(1))
	assert.Equal(t, 3, m.Count())

	var sub Bitmask
	sub.Set(5)
	sub.Set(63)
	assert.True(t, m.ContainsAll(sub))
	assert.True(t, m.ContainsAny(sub))

	sub.Set(7)
	assert.False(t, m.ContainsAll(sub))
	assert.True(t, m.ContainsAny(sub))

	m.Clear(5)
	assert.False(t, m.Has(5))
	assert.Equal(t, 2, m.Count())

	var none Bitmask
	assert.True(t, m.ContainsAll(none))
	assert.False(t, m.ContainsAny(none))
}
