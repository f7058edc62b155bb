package slumber

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df-mc/dragonfly/server/world"
)

// Tick describes the scheduler tick a system runs in.
type Tick struct {
	// Number is the tick number, starting at 1.
	Number uint64
	// Now is the wall-clock time of the tick.
	Now time.Time
	// Delta is the wall-clock time since the previous tick.
	Delta time.Duration
}

// Scheduler runs systems once per tick for every world the manager tracks.
// Worlds are processed in parallel; the systems of one world run serially,
// in stage order, inside a single world transaction.
type Scheduler struct {
	manager *Manager

	// Loop management
	loops   [stageCount][]*loopState
	loopsMu sync.RWMutex

	// Worker pool
	workers    int
	workerPool chan func()
	workerWG   sync.WaitGroup

	// Execution state
	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Tick tracking
	tickRate   time.Duration
	lastTick   time.Time
	tickNumber atomic.Uint64
}

// loopState tracks the state of a single system.
type loopState struct {
	meta     *SystemMeta
	interval time.Duration
	lastRun  time.Time
	nextRun  time.Time
	disabled atomic.Bool
}

// ShouldRun checks if the loop should run at the given time.
func (l *loopState) ShouldRun(now time.Time) bool {
	if l.disabled.Load() {
		return false
	}
	if l.interval == 0 {
		return true
	}
	return !now.Before(l.nextRun)
}

// MarkRun updates the last run time and schedules the next run.
func (l *loopState) MarkRun(now time.Time) {
	l.lastRun = now
	if l.interval > 0 {
		// Drift-free timing
		l.nextRun = l.nextRun.Add(l.interval)
		if l.nextRun.Before(now) {
			// Catch up if we're behind
			l.nextRun = now.Add(l.interval)
		}
	}
}

// newScheduler creates a new scheduler.
func newScheduler(manager *Manager) *Scheduler {
	workers := max(runtime.GOMAXPROCS(0), 1)

	return &Scheduler{
		manager:    manager,
		workers:    workers,
		workerPool: make(chan func(), workers*4),
		tickRate:   50 * time.Millisecond, // 20 TPS
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the scheduler's tick loop.
func (s *Scheduler) Start() {
	if s.running.Swap(true) {
		return // Already running
	}

	for i := 0; i < s.workers; i++ {
		s.workerWG.Add(1)
		go s.worker()
	}

	go s.tickLoop()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	if !s.running.Swap(false) {
		return // Not running
	}

	close(s.stopCh)
	<-s.doneCh

	close(s.workerPool)
	s.workerWG.Wait()
}

// worker is a pool worker that executes jobs.
func (s *Scheduler) worker() {
	defer s.workerWG.Done()
	for fn := range s.workerPool {
		fn()
	}
}

// tickLoop is the main scheduler loop.
func (s *Scheduler) tickLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// tick executes one scheduler tick.
func (s *Scheduler) tick(now time.Time) {
	delta := s.tickRate
	if !s.lastTick.IsZero() {
		delta = now.Sub(s.lastTick)
	}
	s.lastTick = now
	t := &Tick{Number: s.tickNumber.Add(1), Now: now, Delta: delta}

	due := s.dueLoops(now)
	if len(due) == 0 {
		return
	}

	var wg sync.WaitGroup
	for w, sessions := range s.manager.groupedSessions() {
		if w == nil {
			continue
		}
		wg.Add(1)
		job := func() {
			defer wg.Done()
			s.processWorld(t, w, sessions, due)
		}

		select {
		case s.workerPool <- job:
		default:
			// Worker pool full, run inline
			job()
		}
	}
	wg.Wait()

	for _, loop := range due {
		loop.MarkRun(now)
	}
}

// dueLoops returns the loops due at now, in stage order.
func (s *Scheduler) dueLoops(now time.Time) []*loopState {
	s.loopsMu.RLock()
	defer s.loopsMu.RUnlock()

	var due []*loopState
	for stage := Before; stage < stageCount; stage++ {
		for _, loop := range s.loops[stage] {
			if loop.ShouldRun(now) {
				due = append(due, loop)
			}
		}
	}
	return due
}

// processWorld runs the due loops for a world inside one transaction.
func (s *Scheduler) processWorld(t *Tick, w *world.World, sessions []*Session, due []*loopState) {
	<-w.Exec(func(tx *world.Tx) {
		// Keep only sessions whose player is in this transaction.
		present := make([]*Session, 0, len(sessions))
		for _, sess := range sessions {
			if sess.closed.Load() {
				continue
			}
			if _, ok := sess.Player(tx); ok {
				present = append(present, sess)
			}
		}

		ctx := &execContext{
			tx:       tx,
			world:    w,
			manager:  s.manager,
			sessions: present,
			tick:     t,
		}
		for _, loop := range due {
			s.executeLoop(ctx, loop)
		}
	})
}

// executeLoop runs a single system for a world.
func (s *Scheduler) executeLoop(ctx *execContext, loop *loopState) {
	system := loop.meta.Pool.Get().(Runnable)
	defer func() {
		zeroSystem(system, loop.meta)
		loop.meta.Pool.Put(system)
	}()

	if !injectSystem(system, loop.meta, ctx) {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.handleSystemPanic(loop, r)
		}
	}()
	system.Run()
}

// handleSystemPanic logs a panicking system and stops scheduling it.
func (s *Scheduler) handleSystemPanic(loop *loopState, recovered any) {
	if loop.disabled.Swap(true) {
		return
	}
	s.manager.log.Error("slumber: system panicked, disabling it",
		"system", loop.meta.Name,
		"error", fmt.Sprint(recovered),
		"stack", string(debug.Stack()))
}

// addLoop registers a system with the scheduler.
// An interval of 0 runs the system every tick.
func (s *Scheduler) addLoop(meta *SystemMeta, interval time.Duration) {
	s.loopsMu.Lock()
	defer s.loopsMu.Unlock()

	s.loops[meta.Stage] = append(s.loops[meta.Stage], &loopState{
		meta:     meta,
		interval: interval,
		nextRun:  time.Now(),
	})

	// Sort loops by name to ensure deterministic ordering within a stage
	loops := s.loops[meta.Stage]
	sort.SliceStable(loops, func(i, j int) bool {
		return loops[i].meta.Name < loops[j].meta.Name
	})
}
