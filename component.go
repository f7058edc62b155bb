package slumber

import (
	"fmt"
	"reflect"
	"sync"
)

// ComponentID is a unique identifier for a component type within a Manager.
type ComponentID uint8

// MaxComponents is the maximum number of component types a Manager supports.
const MaxComponents = 64

// componentRegistry assigns ComponentIDs to component types.
// IDs are assigned sequentially on first use and never reused.
type componentRegistry struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{ids: make(map[reflect.Type]ComponentID)}
}

// register returns the ID of t, assigning one if t is new.
func (r *componentRegistry) register(t reflect.Type) ComponentID {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Registered while we waited for the write lock.
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("slumber: component limit exceeded (max %d types)", MaxComponents))
	}
	id = ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// getType returns the type registered under id, or nil.
func (r *componentRegistry) getType(id ComponentID) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// getName returns the name of the type registered under id.
func (r *componentRegistry) getName(id ComponentID) string {
	if t := r.getType(id); t != nil {
		return t.Name()
	}
	return ""
}

// count returns the number of registered component types.
func (r *componentRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// componentID returns the ID of T in the session's manager.
func componentID[T any](s *Session) ComponentID {
	return s.manager.registry.register(reflect.TypeFor[T]())
}

// Attachable is implemented by components that need initialization logic
// when attached to a session.
type Attachable interface {
	Attach(s *Session)
}

// Detachable is implemented by components that need cleanup logic
// when detached from a session or when the session closes.
type Detachable interface {
	Detach(s *Session)
}

// Add attaches a component to the session, replacing any component of the
// same type. Detach is called on the replaced component and Attach on the
// new one if they implement it.
func Add[T any](s *Session, component *T) {
	if s == nil || component == nil {
		return
	}
	id := componentID[T](s)

	s.mu.Lock()
	old, _ := s.components[id].(*T)
	s.components[id] = component
	s.mask.Set(id)
	s.mu.Unlock()

	if old != nil {
		if d, ok := any(old).(Detachable); ok {
			d.Detach(s)
		}
	}
	if a, ok := any(component).(Attachable); ok {
		a.Attach(s)
	}
}

// Remove detaches the component of type T from the session, calling its
// Detach method if it implements Detachable.
func Remove[T any](s *Session) {
	if s == nil {
		return
	}
	id := componentID[T](s)

	s.mu.Lock()
	component, _ := s.components[id].(*T)
	s.components[id] = nil
	s.mask.Clear(id)
	s.mu.Unlock()

	if component == nil {
		return
	}
	if d, ok := any(component).(Detachable); ok {
		d.Detach(s)
	}
}

// Get retrieves a component from the session. Returns nil if the component
// is not present.
//
// Concurrency:
// Systems run inside the session's world transaction and may read and modify
// the returned component directly. Other goroutines should go through
// Session.Exec.
func Get[T any](s *Session) *T {
	if s == nil {
		return nil
	}
	id := componentID[T](s)

	s.mu.RLock()
	component, _ := s.components[id].(*T)
	s.mu.RUnlock()
	return component
}

// Has checks if a component type is present on the session.
func Has[T any](s *Session) bool {
	if s == nil {
		return false
	}
	id := componentID[T](s)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask.Has(id)
}
