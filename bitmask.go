package slumber

import (
	"math/bits"
)

// Bitmask tracks which component types a session carries, one bit per
// ComponentID.
type Bitmask uint64

// Set sets the bit for id.
func (m *Bitmask) Set(id ComponentID) {
	*m |= 1 << id
}

// Clear clears the bit for id.
func (m *Bitmask) Clear(id ComponentID) {
	*m &^= 1 << id
}

// Has returns true if the bit for id is set.
func (m Bitmask) Has(id ComponentID) bool {
	return m&(1<<id) != 0
}

// ContainsAll returns true if all bits set in other are also set in m.
func (m Bitmask) ContainsAll(other Bitmask) bool {
	return m&other == other
}

// ContainsAny returns true if any bit set in other is also set in m.
func (m Bitmask) ContainsAny(other Bitmask) bool {
	return m&other != 0
}

// IsZero returns true if no bits are set.
func (m Bitmask) IsZero() bool {
	return m == 0
}

// Count returns the number of bits set.
func (m Bitmask) Count() int {
	return bits.OnesCount64(uint64(m))
}
