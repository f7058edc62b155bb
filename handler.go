package slumber

import (
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
)

// SessionHandler is the player.Handler keeping a session in sync with its
// player: it re-indexes the session when the player changes worlds and
// closes it when the player quits.
//
// Concurrency:
// Dragonfly calls handlers inside the player's world transaction, so they
// never race with systems ticking the same world.
type SessionHandler struct {
	player.NopHandler
	session *Session
}

// Session returns the session associated with this handler.
func (h *SessionHandler) Session() *Session {
	return h.session
}

// NewHandler creates a new player.Handler for the given session.
func NewHandler(s *Session) player.Handler {
	return &SessionHandler{session: s}
}

// Compile-time check that SessionHandler implements player.Handler.
var _ player.Handler = (*SessionHandler)(nil)

// HandleChangeWorld moves the session to the world the player entered.
// A player leaving a world also leaves its bed.
func (h *SessionHandler) HandleChangeWorld(p *player.Player, before, after *world.World) {
	SetSleeping(h.session, false)
	if h.session.manager != nil {
		h.session.manager.MoveSession(h.session, before, after)
	}
}

// HandleQuit closes the session.
func (h *SessionHandler) HandleQuit(p *player.Player) {
	h.session.close()
}
