package slumber

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
)

// Manager is the central slumber coordinator.
// It owns the sessions, the per-world resources, the bundles and the scheduler.
// Multiple Manager instances can coexist in the same process.
type Manager struct {
	// registry holds component type registrations for this manager
	registry *componentRegistry

	// bundles holds all registered bundles
	bundles []*Bundle

	// log is the logger systems and the scheduler write to
	log *slog.Logger

	// settings is the sleep configuration of every world
	settings Settings

	// listeners are notified of slumber transitions
	listeners []Listener

	// resources holds global resources keyed by their element type
	resources   map[reflect.Type]any
	resourcesMu sync.RWMutex

	// worlds holds the resources of every world the manager ticks
	worlds   map[*world.World]*worldState
	worldsMu sync.RWMutex

	// sessions holds all active sessions by entity handle
	sessions   map[*world.EntityHandle]*Session
	sessionsMu sync.RWMutex

	// sessionsByUUID and sessionsByName provide identity lookups
	sessionsByUUID map[uuid.UUID]*Session
	sessionsByName map[string]*Session

	// sessionsByWorld groups sessions by world for scheduling
	sessionsByWorld   map[*world.World]map[*Session]struct{}
	sessionsByWorldMu sync.RWMutex

	// scheduler manages system execution
	scheduler *Scheduler
}

// worldState holds the resources of a single world.
type worldState struct {
	resources map[reflect.Type]any
}

// newManager creates a new manager.
func newManager(log *slog.Logger, settings Settings) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		registry:        newComponentRegistry(),
		log:             log,
		settings:        settings,
		resources:       make(map[reflect.Type]any),
		worlds:          make(map[*world.World]*worldState),
		sessions:        make(map[*world.EntityHandle]*Session),
		sessionsByUUID:  make(map[uuid.UUID]*Session),
		sessionsByName:  make(map[string]*Session),
		sessionsByWorld: make(map[*world.World]map[*Session]struct{}),
	}
	m.scheduler = newScheduler(m)
	return m
}

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger {
	return m.log
}

// Settings returns the sleep settings the manager was built with.
func (m *Manager) Settings() Settings {
	return m.settings
}

// resourceType returns the key a resource is stored under.
func resourceType(res any) reflect.Type {
	t := reflect.TypeOf(res)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// addResource registers a global resource. res must be a pointer.
func (m *Manager) addResource(res any) {
	if reflect.TypeOf(res).Kind() != reflect.Ptr {
		panic("slumber: resource must be a pointer, got " + reflect.TypeOf(res).String())
	}
	m.resourcesMu.Lock()
	m.resources[resourceType(res)] = res
	m.resourcesMu.Unlock()
}

// getResource looks a resource of type t up in w's resources first and the
// global resources second. Returns nil if it is not found.
func (m *Manager) getResource(w *world.World, t reflect.Type) any {
	if w != nil {
		m.worldsMu.RLock()
		ws := m.worlds[w]
		m.worldsMu.RUnlock()
		if ws != nil {
			if res, ok := ws.resources[t]; ok {
				return res
			}
		}
	}

	m.resourcesMu.RLock()
	defer m.resourcesMu.RUnlock()
	return m.resources[t]
}

// Resource retrieves a global resource. Returns nil if it is not registered.
func Resource[T any](m *Manager) *T {
	if m == nil {
		return nil
	}
	res, _ := m.getResource(nil, reflect.TypeFor[T]()).(*T)
	return res
}

// WorldResource retrieves a resource of w, falling back to the global
// resources. Returns nil if it is not found.
func WorldResource[T any](m *Manager, w *world.World) *T {
	if m == nil {
		return nil
	}
	res, _ := m.getResource(w, reflect.TypeFor[T]()).(*T)
	return res
}

// AddWorld starts ticking w, creating its Somnolence, Clock and Config
// resources. Adding a world twice has no effect.
func (m *Manager) AddWorld(w *world.World) {
	if w == nil {
		return
	}
	m.worldsMu.Lock()
	defer m.worldsMu.Unlock()
	if _, ok := m.worlds[w]; ok {
		return
	}

	conf := m.settings.For(w.Name())
	m.worlds[w] = &worldState{resources: map[reflect.Type]any{
		reflect.TypeFor[Somnolence](): NewSomnolence(),
		reflect.TypeFor[Clock]():      NewClock(w),
		reflect.TypeFor[Config]():     &conf,
	}}
	m.log.Debug("slumber: tracking world", "world", w.Name(), "enabled", conf.Enabled, "wake-up-hour", conf.WakeUpHour)
}

// Worlds returns all worlds the manager ticks.
func (m *Manager) Worlds() []*world.World {
	m.worldsMu.RLock()
	defer m.worldsMu.RUnlock()

	worlds := make([]*world.World, 0, len(m.worlds))
	for w := range m.worlds {
		worlds = append(worlds, w)
	}
	return worlds
}

// Somnolence returns the sleep state resource of w, or nil if w is not ticked.
func (m *Manager) Somnolence(w *world.World) *Somnolence {
	m.worldsMu.RLock()
	defer m.worldsMu.RUnlock()
	if ws := m.worlds[w]; ws != nil {
		return ws.resources[reflect.TypeFor[Somnolence]()].(*Somnolence)
	}
	return nil
}

// NewSession creates a new session for a player.
// This should be called when a player joins and the returned session
// should be passed to player.Handle() wrapped with NewHandler().
func (m *Manager) NewSession(p *player.Player) (*Session, error) {
	s := m.newSession(p.H(), p.UUID(), p.Name(), p.XUID())
	w := p.Tx().World()
	m.AddWorld(w)
	s.world.Store(w)
	m.addSession(s)
	return s, nil
}

// newSession allocates a session owned by m without registering it.
func (m *Manager) newSession(h *world.EntityHandle, id uuid.UUID, name, xuid string) *Session {
	return &Session{
		handle:  h,
		uuid:    id,
		name:    name,
		xuid:    xuid,
		manager: m,
	}
}

// addSession registers a session with the manager.
func (m *Manager) addSession(s *Session) {
	m.sessionsMu.Lock()
	m.sessions[s.handle] = s
	m.sessionsByUUID[s.uuid] = s
	m.sessionsByName[s.name] = s
	m.sessionsMu.Unlock()

	if w := s.World(); w != nil {
		m.sessionsByWorldMu.Lock()
		if m.sessionsByWorld[w] == nil {
			m.sessionsByWorld[w] = make(map[*Session]struct{})
		}
		m.sessionsByWorld[w][s] = struct{}{}
		m.sessionsByWorldMu.Unlock()
	}
}

// MoveSession updates the session's world in the index.
func (m *Manager) MoveSession(s *Session, from, to *world.World) {
	m.AddWorld(to)
	s.world.Store(to)

	m.sessionsByWorldMu.Lock()
	defer m.sessionsByWorldMu.Unlock()
	if from != nil && m.sessionsByWorld[from] != nil {
		delete(m.sessionsByWorld[from], s)
		if len(m.sessionsByWorld[from]) == 0 {
			delete(m.sessionsByWorld, from)
		}
	}
	if to != nil {
		if m.sessionsByWorld[to] == nil {
			m.sessionsByWorld[to] = make(map[*Session]struct{})
		}
		m.sessionsByWorld[to][s] = struct{}{}
	}
}

// removeSession unregisters a session from the manager.
func (m *Manager) removeSession(s *Session) {
	m.sessionsMu.Lock()
	delete(m.sessions, s.handle)
	delete(m.sessionsByUUID, s.uuid)
	delete(m.sessionsByName, s.name)
	m.sessionsMu.Unlock()

	if w := s.World(); w != nil {
		m.sessionsByWorldMu.Lock()
		if m.sessionsByWorld[w] != nil {
			delete(m.sessionsByWorld[w], s)
			if len(m.sessionsByWorld[w]) == 0 {
				delete(m.sessionsByWorld, w)
			}
		}
		m.sessionsByWorldMu.Unlock()
	}
}

// GetSession retrieves the session for a player.
func (m *Manager) GetSession(p *player.Player) *Session {
	return m.GetSessionByHandle(p.H())
}

// GetSessionByHandle retrieves a session by entity handle.
func (m *Manager) GetSessionByHandle(h *world.EntityHandle) *Session {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	return m.sessions[h]
}

// GetSessionByUUID retrieves a session by UUID.
func (m *Manager) GetSessionByUUID(id uuid.UUID) *Session {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	return m.sessionsByUUID[id]
}

// GetSessionByName retrieves a session by player name.
func (m *Manager) GetSessionByName(name string) *Session {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	return m.sessionsByName[name]
}

// AllSessions returns a slice of all active sessions.
func (m *Manager) AllSessions() []*Session {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !s.closed.Load() {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

// AllSessionsInWorld returns all active sessions in the specified world.
func (m *Manager) AllSessionsInWorld(w *world.World) []*Session {
	if w == nil {
		return nil
	}

	m.sessionsByWorldMu.RLock()
	defer m.sessionsByWorldMu.RUnlock()

	set := m.sessionsByWorld[w]
	sessions := make([]*Session, 0, len(set))
	for s := range set {
		if !s.closed.Load() {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

// SessionCount returns the number of active sessions.
func (m *Manager) SessionCount() int {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	return len(m.sessions)
}

// groupedSessions returns a snapshot of the sessions of every ticked world.
// Worlds without sessions are included with a nil slice.
func (m *Manager) groupedSessions() map[*world.World][]*Session {
	result := make(map[*world.World][]*Session)
	for _, w := range m.Worlds() {
		result[w] = nil
	}

	m.sessionsByWorldMu.RLock()
	defer m.sessionsByWorldMu.RUnlock()
	for w, set := range m.sessionsByWorld {
		list := make([]*Session, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		result[w] = list
	}
	return result
}

// build initializes all bundles and registers their systems. It fails if
// a system cannot be analyzed or two systems of a stage write one resource.
func (m *Manager) build() error {
	var metas []*SystemMeta
	for _, b := range m.bundles {
		if err := b.build(m); err != nil {
			return err
		}
		metas = append(metas, b.systemMeta...)
	}
	if err := checkWriters(metas); err != nil {
		return err
	}

	for _, b := range m.bundles {
		for i, reg := range b.systems {
			m.scheduler.addLoop(b.systemMeta[i], reg.interval)
		}
	}
	m.log.Debug("slumber: systems built", "systems", len(metas), "components", m.registry.count())
	return nil
}

// Start starts the scheduler.
func (m *Manager) Start() {
	m.scheduler.Start()
}

// Shutdown stops the scheduler and closes all sessions.
func (m *Manager) Shutdown() {
	m.scheduler.Stop()

	for _, s := range m.AllSessions() {
		s.close()
	}
}

// TickNumber returns the current scheduler tick number.
func (m *Manager) TickNumber() uint64 {
	return m.scheduler.tickNumber.Load()
}
