package visibility

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LoopOption is a functional option for configuring a Loop.
type LoopOption func(*Loop) error

// WithFrameRate sets the target frame rate of the loop.
// Default is 60 fps (16ms frame duration). Valid range is 1-240 fps.
func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		l.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithEventQueueSize sets the capacity of the event queue buffer.
// Default is 256. Must be at least 1.
func WithEventQueueSize(size int) LoopOption {
	return func(l *Loop) error {
		if size < 1 {
			return fmt.Errorf("event queue size must be at least 1")
		}
		l.eventQueueSize = size
		return nil
	}
}

// WithWatchers adds watchers that are started when the loop runs.
func WithWatchers(watchers ...Watcher) LoopOption {
	return func(l *Loop) error {
		for _, w := range watchers {
			if w == nil {
				return fmt.Errorf("watcher cannot be nil")
			}
		}
		l.watchers = append(l.watchers, watchers...)
		return nil
	}
}

// WithLoopLogger sets the loop's logger. Default is the VISIBILITY_DEBUG
// file logger.
func WithLoopLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		l.logger = logger
		return nil
	}
}
