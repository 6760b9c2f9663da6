package config

import "errors"

// Configuration validation errors, returned (possibly wrapped) by
// File.Validate so callers can match them with errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidViewport is returned when the viewport has no area.
	ErrInvalidViewport = errors.New("invalid viewport: width and height must be positive")

	// ErrInvalidFrameRate is returned when frame_rate is outside 1-240.
	ErrInvalidFrameRate = errors.New("invalid frame rate: must be within 1-240")

	// ErrInvalidScroll is returned for negative step counts or intervals.
	ErrInvalidScroll = errors.New("invalid scroll: steps and interval must be non-negative")

	// ErrInvalidRegion is returned for regions without an id or with
	// negative dimensions.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrDuplicateRegion is returned when two regions share an id.
	ErrDuplicateRegion = errors.New("duplicate region id")

	// ErrInvalidThreshold is returned for thresholds outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid threshold: must be within [0, 1]")

	// ErrNoRegions is returned when the page defines nothing to observe.
	ErrNoRegions = errors.New("no regions defined: add regions or a stack")
)
