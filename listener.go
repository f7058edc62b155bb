package slumber

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// SlumberEvent is emitted when a world starts skipping the night.
type SlumberEvent struct {
	Tx *world.Tx
	// Sessions are the sessions in the world.
	Sessions []*Session
	// Sleeping are the sessions whose players were asleep.
	Sleeping []*Session
	State    Slumbering
}

// WakeEvent is emitted when a world's slumber reaches its target time.
type WakeEvent struct {
	Tx       *world.Tx
	Sessions []*Session
	State    Slumbering
}

// Listener is notified of slumber transitions. Methods run inside the
// world's transaction.
type Listener interface {
	HandleSlumber(ev *SlumberEvent)
	HandleWake(ev *WakeEvent)
}

// NopListener implements Listener with no-op methods. Embed it to only
// implement the methods needed.
type NopListener struct{}

func (NopListener) HandleSlumber(*SlumberEvent) {}
func (NopListener) HandleWake(*WakeEvent)       {}

// Compile-time check that NopListener implements Listener.
var _ Listener = NopListener{}

// MessageListener tells the players of a world when the night is skipped
// and when they wake up. Empty messages are not sent.
type MessageListener struct {
	// Slumber is sent when the night starts being skipped. It may contain
	// text markup and one %d verb for the number of sleepers.
	Slumber string
	// Wake is sent once the players wake up. It may contain text markup
	// and one %s verb for the wake-up time of day.
	Wake string
}

// DefaultMessageListener returns a MessageListener with the default messages.
func DefaultMessageListener() MessageListener {
	return MessageListener{
		Slumber: "<yellow>%d asleep, sweet dreams...</yellow>",
		Wake:    "<green>Rise and shine, it is %s.</green>",
	}
}

func (l MessageListener) HandleSlumber(ev *SlumberEvent) {
	if l.Slumber == "" {
		return
	}
	broadcast(ev.Tx, ev.Sessions, text.Colourf(l.Slumber, len(ev.Sleeping)))
}

func (l MessageListener) HandleWake(ev *WakeEvent) {
	if l.Wake == "" {
		return
	}
	broadcast(ev.Tx, ev.Sessions, text.Colourf(l.Wake, ev.State.Target.Format("15:04")))
}

// broadcast sends msg to the players of sessions present in tx.
func broadcast(tx *world.Tx, sessions []*Session, msg string) {
	for _, s := range sessions {
		if p, ok := s.Player(tx); ok {
			p.Message(msg)
		}
	}
}

// notifySlumber calls HandleSlumber on every listener.
func (m *Manager) notifySlumber(ev *SlumberEvent) {
	for _, l := range m.listeners {
		l.HandleSlumber(ev)
	}
}

// notifyWake calls HandleWake on every listener.
func (m *Manager) notifyWake(ev *WakeEvent) {
	for _, l := range m.listeners {
		l.HandleWake(ev)
	}
}
