package visibility

import "sync"

// Scheduler runs callbacks on the next tick. A tick is the unit of
// coalescing: a Tracker schedules at most one pass per tick no matter how
// many geometry changes arrive before it.
//
// Loop is the frame-based implementation; ManualScheduler ticks on demand.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule calls f(fn).
func (f SchedulerFunc) Schedule(fn func()) {
	f(fn)
}

// ManualScheduler queues callbacks until Tick is called. It is meant for
// tests and headless simulations where the caller decides when a tick ends.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fn for the next Tick.
func (s *ManualScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Tick runs every callback queued before the call, in order, and returns how
// many ran. Callbacks scheduled while ticking run on the following Tick.
func (s *ManualScheduler) Tick() int {
	s.mu.Lock()
	queued := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
