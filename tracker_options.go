package visibility

import (
	"errors"

	"go.uber.org/zap"
)

// TrackerOption is a functional option for configuring a Tracker.
type TrackerOption func(*Tracker) error

// WithViewport sets the initial explicit viewport.
func WithViewport(bounds Rect) TrackerOption {
	return func(t *Tracker) error {
		vp := bounds
		t.viewport = &vp
		return nil
	}
}

// WithViewportProvider makes the tracker read the viewport from p on every
// pass. If p also implements ChangeNotifier, its change notifications
// trigger passes.
func WithViewportProvider(p ViewportProvider) TrackerOption {
	return func(t *Tracker) error {
		if p == nil {
			return errors.New("viewport provider cannot be nil")
		}
		t.provider = p
		return nil
	}
}

// WithRootMargin grows (or, with negative offsets, shrinks) the viewport
// before intersections are computed.
func WithRootMargin(m Margin) TrackerOption {
	return func(t *Tracker) error {
		t.margin = m
		return nil
	}
}

// WithLogger sets the logger used for pass diagnostics. Default is the
// VISIBILITY_DEBUG file logger.
func WithLogger(l *zap.Logger) TrackerOption {
	return func(t *Tracker) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		t.logger = l
		return nil
	}
}
