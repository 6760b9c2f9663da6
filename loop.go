package visibility

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/grindlemire/go-visibility/internal/debug"
)

// Loop is a frame-based event loop and the animation-frame Scheduler for a
// Tracker. Each frame it processes queued events for up to half the frame
// budget, then runs every callback scheduled so far, then sleeps for the rest
// of the frame. Callbacks scheduled while a frame runs wait for the next
// frame, so any number of scroll or resize events inside one frame coalesce
// into a single tracker pass.
type Loop struct {
	eventQueue chan func()
	stopCh     chan struct{}
	stopOnce   sync.Once

	mu    sync.Mutex
	frame []func()

	// Configuration (set via options)
	frameDuration  time.Duration // Duration per frame (default 16ms = 60fps)
	eventQueueSize int           // Capacity of event queue (default 256)
	watchers       []Watcher
	logger         *zap.Logger
}

// NewLoop creates a loop. It does not start until Run is called.
func NewLoop(opts ...LoopOption) (*Loop, error) {
	l := &Loop{
		frameDuration:  time.Second / 60,
		eventQueueSize: 256,
		logger:         debug.Logger(),
		stopCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.eventQueue = make(chan func(), l.eventQueueSize)
	return l, nil
}

// Schedule queues fn to run at the end of the next frame.
func (l *Loop) Schedule(fn func()) {
	l.mu.Lock()
	l.frame = append(l.frame, fn)
	l.mu.Unlock()
}

// QueueUpdate enqueues a function to run on the loop goroutine.
// Safe to call from any goroutine.
func (l *Loop) QueueUpdate(fn func()) {
	select {
	case l.eventQueue <- fn:
	case <-l.stopCh:
		// Loop is stopping, ignore update
	default:
		l.logger.Warn("event queue full, dropping update", zap.Int("capacity", cap(l.eventQueue)))
	}
}

// Run starts the watchers and the frame loop. It blocks until Stop is called
// or ctx is done, and returns nil in both cases. A Loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	for _, w := range l.watchers {
		w.Start(l.eventQueue, l.stopCh)
	}

	go func() {
		select {
		case <-ctx.Done():
			l.Stop()
		case <-l.stopCh:
		}
	}()

	l.logger.Debug("loop started", zap.Duration("frame", l.frameDuration), zap.Int("watchers", len(l.watchers)))
	for {
		frameStart := time.Now()

		if !l.drainEvents(frameStart.Add(l.frameDuration / 2)) {
			return nil
		}
		l.runFrame()

		// Sleep for remaining frame time to maintain consistent framerate
		elapsed := time.Since(frameStart)
		if elapsed < l.frameDuration {
			select {
			case <-time.After(l.frameDuration - elapsed):
			case <-l.stopCh:
				return nil
			}
		}
	}
}

// Stop signals Run to exit and stops all watchers. Stop is idempotent.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.logger.Debug("loop stopped")
	})
}

// drainEvents runs queued events until the queue is empty or the deadline
// passes. It returns false if the loop was stopped.
func (l *Loop) drainEvents(deadline time.Time) bool {
	for time.Now().Before(deadline) {
		select {
		case handler := <-l.eventQueue:
			handler()
		case <-l.stopCh:
			return false
		default:
			return true
		}
	}
	return true
}

// runFrame runs the callbacks scheduled before the frame started.
func (l *Loop) runFrame() {
	l.mu.Lock()
	callbacks := l.frame
	l.frame = nil
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
