package slumber

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/world"
)

// Builder configures slumber before initialization.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	bundles   []func(*Manager) *Bundle
	resources []any
	listeners []Listener
	settings  Settings
	log       *slog.Logger
}

// NewBuilder creates a new builder using DefaultSettings and slog.Default().
func NewBuilder() *Builder {
	return &Builder{settings: DefaultSettings()}
}

// Bundle adds a bundle to the builder.
func (b *Builder) Bundle(callback func(*Manager) *Bundle) *Builder {
	b.bundles = append(b.bundles, callback)
	return b
}

// Resource adds a global resource available to all systems.
func (b *Builder) Resource(res any) *Builder {
	b.resources = append(b.resources, res)
	return b
}

// Listener adds a listener notified of slumber transitions in every world.
func (b *Builder) Listener(l Listener) *Builder {
	b.listeners = append(b.listeners, l)
	return b
}

// Settings sets the sleep configuration of the worlds.
func (b *Builder) Settings(s Settings) *Builder {
	b.settings = s
	return b
}

// Logger sets the logger of the manager.
func (b *Builder) Logger(log *slog.Logger) *Builder {
	b.log = log
	return b
}

// Init builds and starts the manager, ticking the worlds passed. Worlds
// players join or move to later are added automatically.
// Init panics if the settings are invalid or a system cannot be analyzed.
func (b *Builder) Init(ws ...*world.World) *Manager {
	if err := b.settings.Validate(); err != nil {
		panic("slumber: invalid settings: " + err.Error())
	}
	m := newManager(b.log, b.settings)

	var hooks []func(*Manager)

	for _, f := range b.bundles {
		bund := f(m)
		m.bundles = append(m.bundles, bund)
		hooks = append(hooks, bund.postInitHooks...)
	}

	for _, res := range b.resources {
		m.addResource(res)
	}
	m.listeners = append(m.listeners, b.listeners...)

	for _, bundle := range m.bundles {
		for _, res := range bundle.resources {
			m.addResource(res)
		}
		m.listeners = append(m.listeners, bundle.listeners...)
	}

	for _, w := range ws {
		m.AddWorld(w)
	}

	if err := m.build(); err != nil {
		panic("slumber: failed to build systems: " + err.Error())
	}

	m.Start()

	for _, hook := range hooks {
		hook(m)
	}

	return m
}
