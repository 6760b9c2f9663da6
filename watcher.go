package visibility

import (
	"os"
	"os/signal"
	"time"
)

// Watcher is an event source started by Loop.Run. Sources run their own
// goroutine but post handlers to the loop, so handlers always run on the
// loop goroutine and may call Tracker methods directly.
type Watcher interface {
	// Start begins the watcher goroutine. The eventQueue channel and stopCh
	// are provided by the Loop.
	Start(eventQueue chan<- func(), stopCh <-chan struct{})
}

// ChannelWatcher watches a channel and calls handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// NewChannelWatcher creates a watcher that calls fn for each value received on ch.
// The handler is called on the loop goroutine, not in a separate goroutine.
func NewChannelWatcher[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{
		ch:      ch,
		handler: fn,
	}
}

// Watch creates a channel watcher. The handler is called on the loop
// whenever data arrives on the channel.
//
// Example:
//
//	scrolls := make(chan int)
//	w := visibility.Watch(scrolls, func(dy int) {
//	    viewport.ScrollBy(0, dy)
//	})
func Watch[T any](ch <-chan T, handler func(T)) Watcher {
	return NewChannelWatcher(ch, handler)
}

// Start the watcher.
func (w *ChannelWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case val, ok := <-w.ch:
				if !ok {
					return // Channel closed
				}
				select {
				case eventQueue <- func() {
					w.handler(val)
				}:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a timer watcher that fires at the given interval.
// The handler is called on the loop.
func OnTimer(interval time.Duration, handler func()) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start the watcher.
func (w *timerWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case eventQueue <- w.handler:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// signalWatcher forwards OS signals, such as terminal resizes, to the loop.
type signalWatcher struct {
	signals []os.Signal
	handler func()
}

// OnSignal creates a watcher that calls handler on the loop whenever one of
// sigs is received. With no signals the watcher does nothing; pair it with
// ResizeSignals to re-read the viewport after a terminal resize.
func OnSignal(handler func(), sigs ...os.Signal) Watcher {
	return &signalWatcher{signals: sigs, handler: handler}
}

// Start the watcher.
func (w *signalWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	if len(w.signals) == 0 {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, w.signals...)
	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				select {
				case eventQueue <- w.handler:
				case <-stopCh:
					return
				}
			}
		}
	}()
}
