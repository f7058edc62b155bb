package slumber

import (
	"reflect"

	"github.com/df-mc/dragonfly/server/world"
)

// execContext is what the scheduler hands to a system for one run.
type execContext struct {
	tx       *world.Tx
	world    *world.World
	manager  *Manager
	sessions []*Session
	tick     *Tick
}

// injectSystem injects dependencies into a system instance.
// It returns false if a required resource is missing, in which case the
// system must not run.
func injectSystem(system any, meta *SystemMeta, ctx *execContext) bool {
	v := reflect.ValueOf(system).Elem()

	for i := range meta.Fields {
		field := &meta.Fields[i]
		dst := v.Field(field.Index)

		switch field.Kind {
		case KindTx:
			dst.Set(reflect.ValueOf(ctx.tx))

		case KindWorld:
			dst.Set(reflect.ValueOf(ctx.world))

		case KindManager:
			dst.Set(reflect.ValueOf(ctx.manager))

		case KindTick:
			dst.Set(reflect.ValueOf(ctx.tick))

		case KindSessions:
			dst.Set(reflect.ValueOf(filterSessions(ctx.sessions, meta)))

		case KindResource:
			var res any
			if ctx.manager != nil {
				res = ctx.manager.getResource(ctx.world, field.ResourceType)
			}
			if res == nil {
				if !field.Optional {
					return false
				}
				dst.Set(reflect.Zero(dst.Type()))
				continue
			}
			dst.Set(reflect.ValueOf(res))

		case KindPhantomWith, KindPhantomWithout:
			// Filtering only; nothing to inject.
			continue

		case KindPayload:
			// Pooled instances are reused across worlds and ticks.
			dst.Set(reflect.Zero(dst.Type()))
		}
	}

	return true
}

// zeroSystem zeros all injected and payload fields for pool reuse.
func zeroSystem(system any, meta *SystemMeta) {
	v := reflect.ValueOf(system).Elem()

	for i := range meta.Fields {
		field := &meta.Fields[i]
		switch field.Kind {
		case KindPhantomWith, KindPhantomWithout:
			continue
		default:
			dst := v.Field(field.Index)
			dst.Set(reflect.Zero(dst.Type()))
		}
	}
}

// filterSessions returns the open sessions passing the system's With/Without filter.
func filterSessions(sessions []*Session, meta *SystemMeta) []*Session {
	out := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		if s.closed.Load() {
			continue
		}
		if !s.canRun(meta.RequireMask, meta.ExcludeMask) {
			continue
		}
		out = append(out, s)
	}
	return out
}
