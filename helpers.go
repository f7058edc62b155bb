package slumber

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
)

// sessionOf returns the session behind a player's SessionHandler, or nil if
// the player is handled by something else.
func sessionOf(p *player.Player) *Session {
	if h, ok := p.Handler().(*SessionHandler); ok {
		return h.session
	}
	return nil
}

// Command resolves the player running a command and its session. Both are
// nil when the source is not a player; the session alone is nil when the
// player was never handed a SessionHandler.
//
//	func (c AfkCommand) Run(src cmd.Source, o *cmd.Output, tx *world.Tx) {
//	    _, sess := slumber.Command(src)
//	    if sess == nil {
//	        o.Error("Players only.")
//	        return
//	    }
//	    slumber.Add(sess, &slumber.Sleepless{Reason: "afk"})
//	}
//
// Commands run inside the player's world transaction, so components may be
// read and changed directly.
func Command(src cmd.Source) (*player.Player, *Session) {
	p, ok := src.(*player.Player)
	if !ok {
		return nil, nil
	}
	return p, sessionOf(p)
}
