package ringtext

import (
	"sync"
	"time"
)

// Scheduler debounces generation requests from an interactive surface.
// Each Update replaces any still-pending request (requests are never
// queued); after the quiescence delay the pass runs to completion. The
// published snapshot follows last-writer-wins: a stale pass finishing
// after a newer one is discarded. Readers only ever observe a frozen
// Result, never a solid under construction.
type Scheduler struct {
	gen   *Generator
	delay time.Duration

	mu        sync.Mutex
	cond      *sync.Cond
	timer     *time.Timer
	pending   *scheduledPass
	nextID    uint64
	running   int
	published uint64
	snapshot  *Result
	snapErr   error
	closed    bool
}

type scheduledPass struct {
	id   uint64
	ring RingSpec
	text TextSpec
}

// NewScheduler wraps a generator with a debounce delay.
func NewScheduler(gen *Generator, delay time.Duration) *Scheduler {
	s := &Scheduler{gen: gen, delay: delay}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Update requests a regeneration. A not-yet-started pending request is
// replaced and its quiescence timer restarted; a pass already
// executing is unaffected and runs to completion.
func (s *Scheduler) Update(ring RingSpec, text TextSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.nextID++
	p := &scheduledPass{id: s.nextID, ring: ring, text: text}
	s.pending = p
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(p.id) })
}

func (s *Scheduler) fire(id uint64) {
	s.mu.Lock()
	if s.closed || s.pending == nil || s.pending.id != id {
		// Replaced by a newer request before execution.
		s.mu.Unlock()
		return
	}
	p := s.pending
	s.pending = nil
	s.running++
	s.mu.Unlock()

	res, err := s.gen.Generate(p.ring, p.text)

	s.mu.Lock()
	if p.id > s.published {
		s.published = p.id
		s.snapshot, s.snapErr = res, err
	}
	s.running--
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Snapshot returns the most recently published pass result (or its
// error). The mesh is frozen; a later pass replaces it wholesale.
func (s *Scheduler) Snapshot() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.snapErr
}

// Wait blocks until no request is pending or executing.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.closed && (s.pending != nil || s.running > 0) {
		s.cond.Wait()
	}
}

// Close cancels any pending request. Executing passes still run to
// completion, but their results are no longer observable via Wait.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cond.Broadcast()
}
