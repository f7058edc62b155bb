package slumber

import (
	"reflect"
	"time"

	"github.com/df-mc/dragonfly/server/cmd"
)

// Bundle groups related systems, commands, resources and listeners together.
// Bundles are registered with the Builder.
type Bundle struct {
	name string

	// systems holds system registrations
	systems []systemRegistration

	// commands holds Dragonfly commands registered at build time
	commands []cmd.Command

	// resources holds bundle-level resources (registered with the manager)
	resources []any

	// listeners are notified of slumber transitions
	listeners []Listener

	postInitHooks []func(*Manager)

	// systemMeta holds computed metadata, parallel to systems
	systemMeta []*SystemMeta
}

// systemRegistration holds a system registration.
type systemRegistration struct {
	system   Runnable
	interval time.Duration
	stage    Stage
}

// NewBundle creates a new bundle with the given name.
func NewBundle(name string) *Bundle {
	return &Bundle{name: name}
}

// Name returns the bundle name.
func (b *Bundle) Name() string {
	return b.name
}

// Resource registers a bundle-level resource. res must be a pointer.
// Bundle resources are global: every world sees the same value.
func (b *Bundle) Resource(res any) *Bundle {
	b.resources = append(b.resources, res)
	return b
}

// Listener registers a listener for slumber transitions.
func (b *Bundle) Listener(l Listener) *Bundle {
	b.listeners = append(b.listeners, l)
	return b
}

// PostInit registers a hook called once the manager has started.
func (b *Bundle) PostInit(hook func(*Manager)) *Bundle {
	b.postInitHooks = append(b.postInitHooks, hook)
	return b
}

// Build returns a callback function that returns this bundle.
// This allows for cleaner inline bundle initialization:
//
//	mngr := slumber.NewBuilder().
//	    Bundle(slumber.DefaultBundle().Build()).
//	    Init(srv.World())
func (b *Bundle) Build() func(*Manager) *Bundle {
	return func(*Manager) *Bundle {
		return b
	}
}

// Command registers a Dragonfly command for this bundle.
// Commands are registered with Dragonfly's command system when the bundle is built.
func (b *Bundle) Command(command cmd.Command) *Bundle {
	b.commands = append(b.commands, command)
	return b
}

// System registers a system that runs in the given stage every interval.
// Interval of 0 means the system runs every tick.
func (b *Bundle) System(sys Runnable, interval time.Duration, stage Stage) *Bundle {
	b.systems = append(b.systems, systemRegistration{
		system:   sys,
		interval: interval,
		stage:    stage,
	})
	return b
}

// build analyzes all systems and registers commands.
func (b *Bundle) build(m *Manager) error {
	b.systemMeta = b.systemMeta[:0]
	for _, reg := range b.systems {
		meta, err := analyzeSystem(reflect.TypeOf(reg.system), b, m.registry)
		if err != nil {
			return err
		}
		meta.Stage = reg.stage
		b.systemMeta = append(b.systemMeta, meta)
	}

	for _, c := range b.commands {
		cmd.Register(c)
	}
	return nil
}
