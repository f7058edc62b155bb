// Package slumber skips the night on Dragonfly servers once players sleep.
//
// Every tick, slumber samples the movement state of the players of each
// world. As soon as a player sleeps and the world allows it, the world moves
// from Awake to Slumbering: its clock is fast-forwarded to the configured
// wake-up hour over a few real seconds (one second per six game hours, at
// least three), after which the players wake up.
//
// Dragonfly has no beds, so players are put to bed with SetSleeping, from a
// plugin or with the built-in "/sleep toggle" command. Sneaking gets them up.
//
// # Quick Start
//
//	settings, err := slumber.LoadSettings("sleep.yml")
//	if err != nil {
//	    panic(err)
//	}
//
//	mngr := slumber.NewBuilder().
//	    Settings(settings).
//	    Bundle(slumber.DefaultBundle().Build()).
//	    Listener(slumber.DefaultMessageListener()).
//	    Init(srv.World())
//
//	for p := range srv.Accept() {
//	    sess, err := mngr.NewSession(p)
//	    if err != nil {
//	        p.Disconnect("failed to initialize session")
//	        continue
//	    }
//	    p.Handle(slumber.NewHandler(sess))
//	}
//
// # Systems
//
// Systems are structs implementing Runnable. The scheduler injects their
// fields by type (*world.Tx, *world.World, *Manager, []*Session, *Tick) or
// by tag:
//
//	type MySystem struct {
//	    Tx         *world.Tx
//	    Sessions   []*slumber.Session
//	    Somnolence *slumber.Somnolence `slumber:"res,mut"`
//	    Config     *slumber.Config     `slumber:"res"`
//	    _          slumber.Without[slumber.Sleepless]
//	}
//
// # Tag Reference
//
//	slumber:"res"     Required resource (world first, then global)
//	slumber:"res,mut" Required resource the system writes
//	slumber:"res,opt" Optional resource (nil if missing)
package slumber

// Version is the slumber version.
const Version = "1.0.0"

// DefaultBundle returns the bundle implementing night skipping: the
// movement, sleep and slumber systems and the /sleep command.
func DefaultBundle() *Bundle {
	return NewBundle("slumber").
		System(&MovementSystem{}, 0, Before).
		System(&SleepSystem{}, 0, Default).
		System(&SlumberSystem{}, 0, After).
		Command(NewSleepCommand())
}
