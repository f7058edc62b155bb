package slumber

import (
	"strings"
)

// tagName is the struct tag key systems declare dependencies with.
const tagName = "slumber"

// Tag modifiers
const (
	modMut = "mut" // Mutable access
	modOpt = "opt" // Optional (nil if missing)
	modRes = "res" // Resource injection
)

// FieldKind represents the type of field for injection.
type FieldKind int

const (
	// KindTx indicates a *world.Tx field
	KindTx FieldKind = iota
	// KindWorld indicates a *world.World field
	KindWorld
	// KindManager indicates a *Manager field
	KindManager
	// KindSessions indicates a []*Session field
	KindSessions
	// KindTick indicates a *Tick field
	KindTick
	// KindResource indicates a world or global resource field
	KindResource
	// KindPhantomWith indicates a With[T] phantom type
	KindPhantomWith
	// KindPhantomWithout indicates a Without[T] phantom type
	KindPhantomWithout
	// KindPayload indicates a non-injected field
	KindPayload
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindTx:
		return "Tx"
	case KindWorld:
		return "World"
	case KindManager:
		return "Manager"
	case KindSessions:
		return "Sessions"
	case KindTick:
		return "Tick"
	case KindResource:
		return "Resource"
	case KindPhantomWith:
		return "PhantomWith"
	case KindPhantomWithout:
		return "PhantomWithout"
	case KindPayload:
		return "Payload"
	default:
		return "Unknown"
	}
}

// TagInfo holds parsed tag information.
type TagInfo struct {
	Mutable  bool // slumber:"mut"
	Optional bool // slumber:"opt"
	Resource bool // slumber:"res"
}

// parseTag parses a slumber struct tag.
func parseTag(tag string) TagInfo {
	info := TagInfo{}
	if tag == "" {
		return info
	}

	for part := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(part) {
		case modMut:
			info.Mutable = true
		case modOpt:
			info.Optional = true
		case modRes:
			info.Resource = true
		}
	}
	return info
}
