package visibility

import "errors"

var (
	// ErrDuplicateID is returned by Observe when the id is already registered.
	// It signals a lifecycle bug in the caller; the existing registration is kept.
	ErrDuplicateID = errors.New("region id already observed")

	// ErrInvalidThreshold is returned when a threshold is outside [0, 1] or NaN.
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")

	// ErrTrackerClosed is returned by Observe after Close.
	ErrTrackerClosed = errors.New("tracker is closed")

	// ErrViewportUnavailable is returned by providers that cannot read the
	// viewport, e.g. when output is not an interactive terminal.
	ErrViewportUnavailable = errors.New("viewport unavailable")

	// ErrNilScheduler is returned by NewTracker when no scheduler is given.
	ErrNilScheduler = errors.New("tracker requires a scheduler")
)
