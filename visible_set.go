package visibility

import (
	"maps"
	"slices"
)

// VisibleSet accumulates the ids currently reported as intersecting. Its
// Apply method can be passed directly to Tracker.Subscribe.
type VisibleSet struct {
	ids map[ID]struct{}
}

// NewVisibleSet creates an empty set.
func NewVisibleSet() *VisibleSet {
	return &VisibleSet{ids: make(map[ID]struct{})}
}

// Apply updates the set from a batch.
func (s *VisibleSet) Apply(changes []Change) {
	for _, c := range changes {
		if c.State.Intersecting {
			s.ids[c.ID] = struct{}{}
		} else {
			delete(s.ids, c.ID)
		}
	}
}

// Forget removes id, e.g. after the region was unmounted.
func (s *VisibleSet) Forget(id ID) {
	delete(s.ids, id)
}

// Has reports whether id was last reported as intersecting.
func (s *VisibleSet) Has(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of intersecting ids.
func (s *VisibleSet) Len() int {
	return len(s.ids)
}

// IDs returns the intersecting ids in sorted order.
func (s *VisibleSet) IDs() []ID {
	return slices.Sorted(maps.Keys(s.ids))
}
