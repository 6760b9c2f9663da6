package visibility

import "strconv"

// MountOption configures a region registered through a Mounter.
type MountOption func(*Region)

// Thresholds sets the region's thresholds.
func Thresholds(ts ...float64) MountOption {
	return func(r *Region) {
		r.Thresholds = ts
	}
}

// OnceVisible stops observing the region after it is first reported as
// intersecting, as a lazy loader would.
func OnceVisible() MountOption {
	return func(r *Region) {
		r.Once = true
	}
}

// Mounter is the registration interface a renderer uses: it assigns ids to
// mounted regions and, for renderers that rebuild their view tree every
// frame, reconciles keyed regions with mark-and-sweep.
//
// Keyed use: call MountKeyed for every region produced by a render, then
// Sweep. Keys mounted during the render are observed or refreshed; keys that
// were not mounted since the previous Sweep are unobserved.
type Mounter struct {
	tracker *Tracker
	prefix  string
	next    uint64

	keyed  map[string]ID
	active map[string]bool // Marked during render, swept after
}

// NewMounter creates a Mounter on t. Ids from Mount are prefix-N.
func NewMounter(t *Tracker, prefix string) *Mounter {
	return &Mounter{
		tracker: t,
		prefix:  prefix,
		keyed:   make(map[string]ID),
		active:  make(map[string]bool),
	}
}

// Mount observes a new region and returns its generated id.
func (m *Mounter) Mount(bounds Rect, opts ...MountOption) (ID, error) {
	m.next++
	id := ID(m.prefix + "-" + strconv.FormatUint(m.next, 10))
	if err := m.tracker.Observe(newRegion(id, bounds, opts)); err != nil {
		return "", err
	}
	return id, nil
}

// MountKeyed marks key as mounted in the current render. The first time a
// key is seen its region is observed with id ID(key); later calls refresh
// its bounds. Options apply only when the region is first observed.
func (m *Mounter) MountKeyed(key string, bounds Rect, opts ...MountOption) (ID, error) {
	m.active[key] = true
	if id, ok := m.keyed[key]; ok {
		m.tracker.Refresh(id, bounds)
		return id, nil
	}

	id := ID(key)
	if err := m.tracker.Observe(newRegion(id, bounds, opts)); err != nil {
		delete(m.active, key)
		return "", err
	}
	m.keyed[key] = id
	return id, nil
}

// Unmount stops observing id. Unknown ids are ignored.
func (m *Mounter) Unmount(id ID) {
	for key, kid := range m.keyed {
		if kid == id {
			delete(m.keyed, key)
			delete(m.active, key)
			break
		}
	}
	m.tracker.Unobserve(id)
}

// Sweep unobserves keyed regions that were not mounted since the previous
// Sweep and returns how many were removed.
func (m *Mounter) Sweep() int {
	removed := 0
	for key, id := range m.keyed {
		if !m.active[key] {
			m.tracker.Unobserve(id)
			delete(m.keyed, key)
			removed++
		}
	}
	// Reset active keys for next render
	m.active = make(map[string]bool)
	return removed
}

func newRegion(id ID, bounds Rect, opts []MountOption) Region {
	r := Region{ID: id, Bounds: bounds}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
