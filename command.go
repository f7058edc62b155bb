package slumber

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// SleepCommand reports the sleep state of the caller's world and who is
// asleep in it.
type SleepCommand struct{}

// SleepToggleCommand puts the caller to bed, or gets them out of it.
type SleepToggleCommand struct {
	Toggle cmd.SubCommand `cmd:"toggle"`
}

// NewSleepCommand returns the /sleep command: "/sleep" reports the world's
// sleep state and "/sleep toggle" lies the caller down or gets them up.
func NewSleepCommand() cmd.Command {
	return cmd.New("sleep", "Shows whether the night is being skipped and who is asleep.", []string{"slumber"},
		SleepCommand{}, SleepToggleCommand{})
}

func (SleepToggleCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	_, sess := Command(src)
	if sess == nil {
		o.Error("This command can only be run by players.")
		return
	}
	if toggleSleeping(sess) {
		o.Print(text.Colourf("<aqua>You lie down. Sneak to get up.</aqua>"))
		return
	}
	o.Print(text.Colourf("<aqua>You get up.</aqua>"))
}

// toggleSleeping flips the session's sleeping flag and returns the new value.
func toggleSleeping(sess *Session) bool {
	sleeping := !IsSleeping(sess)
	SetSleeping(sess, sleeping)
	return sleeping
}

func (SleepCommand) Run(src cmd.Source, o *cmd.Output, tx *world.Tx) {
	p, sess := Command(src)
	if p == nil || sess == nil {
		o.Error("This command can only be run by players.")
		return
	}
	m := sess.Manager()
	w := tx.World()

	som := m.Somnolence(w)
	if som == nil {
		o.Error("Sleeping is not tracked in this world.")
		return
	}

	switch st := som.State().(type) {
	case Slumbering:
		o.Print(text.Colourf("<aqua>Skipping the night: %.0f%%, waking up at %s.</aqua>",
			st.Fraction()*100, st.Target.Format("15:04")))
	default:
		conf := WorldResource[Config](m, w)
		o.Print(text.Colourf("<aqua>Awake. Players wake up at %s.</aqua>",
			ComputeWakeupInstant(gameEpoch, conf.WakeUpHour).Format("15:04")))
	}

	for _, s := range m.AllSessionsInWorld(w) {
		mv := Get[MovementStates](s)
		if mv == nil || !mv.Sleeping {
			continue
		}
		o.Print(text.Colourf("<grey> - %s at %.0f, %.0f, %.0f</grey>",
			s.Name(), mv.Position.X(), mv.Position.Y(), mv.Position.Z()))
	}
}
