package visibility

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// ID identifies a region. It must be unique among currently observed regions.
type ID string

// Region is a rectangle whose visibility relative to the viewport is tracked.
type Region struct {
	ID ID

	// Bounds is a snapshot of the region's geometry in document coordinates.
	// Use Tracker.Refresh to update it.
	Bounds Rect

	// Thresholds are the visibility ratios in [0, 1] whose crossing is
	// reported. Empty means {0}: report entering and leaving only.
	Thresholds []float64

	// Once stops observing the region after its first batch entry that
	// reports it as intersecting.
	Once bool
}

// State is the last reported intersection state of a region.
type State struct {
	// Intersecting is true iff the region overlaps the viewport with a
	// positive area.
	Intersecting bool

	// Ratio is the overlapping area divided by the region's area.
	Ratio float64
}

func (s State) String() string {
	return fmt.Sprintf("{intersecting:%t ratio:%s}", s.Intersecting, strconv.FormatFloat(s.Ratio, 'f', -1, 64))
}

// Change is one entry of a batch delivered to subscribers.
type Change struct {
	ID    ID
	State State

	// Bounds is the region geometry the state was computed from.
	Bounds Rect

	// RootBounds is the viewport after the root margin was applied.
	RootBounds Rect

	// IntersectionRect is the part of Bounds inside RootBounds.
	IntersectionRect Rect

	// Pass is the number of the pass that produced the change. Passes are
	// numbered from 1 per tracker.
	Pass uint64
}

// normalizeThresholds validates thresholds and returns a sorted copy without
// duplicates. An empty list becomes {0}.
func normalizeThresholds(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{0}, nil
	}
	out := make([]float64, 0, len(in))
	for _, t := range in {
		if math.IsNaN(t) || t < 0 || t > 1 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, t)
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// thresholdIndex places a computed state among sorted thresholds. A region
// that does not intersect has index -1; otherwise the index is the number of
// thresholds at or below the ratio. Any change of index between two passes is
// a crossing, including landing exactly on a threshold.
func thresholdIndex(s State, thresholds []float64) int {
	if !s.Intersecting {
		return -1
	}
	n := 0
	for _, t := range thresholds {
		if t > s.Ratio {
			break
		}
		n++
	}
	return n
}
