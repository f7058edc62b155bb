package slumber

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
)

// Session represents a connected player.
// It wraps the player's EntityHandle (which is persistent across transactions)
// and stores the components attached to the player.
//
// Sessions are created when players join and closed when they leave.
type Session struct {
	// handle is the persistent entity handle for the player
	handle *world.EntityHandle

	// uuid, name and xuid are cached for lookups outside transactions
	uuid uuid.UUID
	name string
	xuid string

	// mask tracks which components are present
	mask Bitmask

	// components stores components indexed by ComponentID
	components [MaxComponents]any

	// mu protects mask and components
	mu sync.RWMutex

	// world is the world the player was last seen in
	world atomic.Pointer[world.World]

	// manager is the manager that owns this session
	manager *Manager

	// closed indicates if the session has been closed
	closed atomic.Bool
}

// Handle returns the underlying EntityHandle.
func (s *Session) Handle() *world.EntityHandle {
	return s.handle
}

// UUID returns the player's UUID.
func (s *Session) UUID() uuid.UUID {
	return s.uuid
}

// Name returns the player's name.
func (s *Session) Name() string {
	return s.name
}

// XUID returns the player's XUID.
func (s *Session) XUID() string {
	return s.xuid
}

// Player retrieves the *player.Player of this session within the given transaction.
// It returns (nil, false) if the player is not in the transaction's world or
// the session has no entity handle.
func (s *Session) Player(tx *world.Tx) (*player.Player, bool) {
	if s.handle == nil || tx == nil {
		return nil, false
	}
	e, ok := s.handle.Entity(tx)
	if !ok {
		return nil, false
	}
	p, ok := e.(*player.Player)
	return p, ok
}

// Exec runs a function within the session's world transaction.
// Returns false if the player is offline or the session is closed.
func (s *Session) Exec(fn func(tx *world.Tx, p *player.Player)) bool {
	if s.closed.Load() || s.handle == nil {
		return false
	}

	return s.handle.ExecWorld(func(tx *world.Tx, e world.Entity) {
		p, ok := e.(*player.Player)
		if !ok {
			return
		}
		fn(tx, p)
	})
}

// World returns the world the player was last seen in.
func (s *Session) World() *world.World {
	return s.world.Load()
}

// Manager returns the manager of this session.
func (s *Session) Manager() *Manager {
	return s.manager
}

// Closed returns true if the session has been closed.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Mask returns a copy of the session's component bitmask.
func (s *Session) Mask() Bitmask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask
}

// String returns a string representation of the session for debugging.
func (s *Session) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comps := make([]string, 0, s.mask.Count())
	for id := range ComponentID(MaxComponents) {
		if s.mask.Has(id) {
			comps = append(comps, s.manager.registry.getName(id))
		}
	}
	return fmt.Sprintf("Session{Name: %s, XUID: %s, UUID: %s, Components: [%s]}",
		s.name, s.xuid, s.uuid, strings.Join(comps, ", "))
}

// canRun checks if the session passes a system's component filter.
func (s *Session) canRun(require, exclude Bitmask) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask.ContainsAll(require) && !s.mask.ContainsAny(exclude)
}

// close detaches all components and unregisters the session.
// This is called automatically when the player quits.
func (s *Session) close() {
	if s.closed.Swap(true) {
		return
	}

	// Collect detachable components while the session is still intact.
	var toDetach []Detachable
	s.mu.RLock()
	for _, c := range s.components {
		if d, ok := c.(Detachable); ok {
			toDetach = append(toDetach, d)
		}
	}
	s.mu.RUnlock()

	// Detach outside the session lock; hooks may still read the session.
	for _, d := range toDetach {
		d.Detach(s)
	}

	s.mu.Lock()
	s.components = [MaxComponents]any{}
	s.mask = 0
	s.mu.Unlock()

	if s.manager != nil {
		s.manager.removeSession(s)
	}
}
