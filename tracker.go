package visibility

import (
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/grindlemire/go-visibility/internal/debug"
)

// Tracker maintains the last reported intersection state of a set of
// regions against a viewport and delivers changes to subscribers in
// batches.
//
// Thread Safety Rules:
//   - All methods must be called from the goroutine that runs the
//     Scheduler's ticks (the Loop goroutine, or the caller of
//     ManualScheduler.Tick).
//   - For background updates, post through Loop.QueueUpdate.
//
// The tracker keeps only ids, bounds snapshots and thresholds; it never
// holds references to the renderer's views.
type Tracker struct {
	sched  Scheduler
	logger *zap.Logger

	viewport       *Rect
	provider       ViewportProvider
	cancelProvider func()
	margin         Margin

	regions   map[ID]*trackedRegion
	order     []ID
	listeners listenerList[func([]Change)]

	pending atomic.Bool
	passes  uint64
	closed  bool
}

// trackedRegion is the tracker's copy of a Region plus its reported state.
type trackedRegion struct {
	id         ID
	bounds     Rect
	thresholds []float64
	once       bool

	reported bool
	state    State
	index    int
}

// NewTracker creates a tracker that runs its passes on s.
func NewTracker(s Scheduler, opts ...TrackerOption) (*Tracker, error) {
	if s == nil {
		return nil, ErrNilScheduler
	}
	t := &Tracker{
		sched:   s,
		logger:  debug.Logger(),
		regions: make(map[ID]*trackedRegion),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if n, ok := t.provider.(ChangeNotifier); ok {
		t.cancelProvider = n.OnChange(t.Invalidate)
	}
	return t, nil
}

// Observe starts tracking r and schedules a pass so that subscribers
// receive its initial state.
//
// Observing an id that is already registered returns an error wrapping
// ErrDuplicateID and leaves the existing registration untouched. A
// zero-area region is accepted; it never intersects.
func (t *Tracker) Observe(r Region) error {
	if t.closed {
		return ErrTrackerClosed
	}
	if _, exists := t.regions[r.ID]; exists {
		return fmt.Errorf("observe %q: %w", r.ID, ErrDuplicateID)
	}
	thresholds, err := normalizeThresholds(r.Thresholds)
	if err != nil {
		return fmt.Errorf("observe %q: %w", r.ID, err)
	}

	t.regions[r.ID] = &trackedRegion{
		id:         r.ID,
		bounds:     r.Bounds,
		thresholds: thresholds,
		once:       r.Once,
		index:      -1,
	}
	t.order = append(t.order, r.ID)
	t.logger.Debug("observe", zap.String("id", string(r.ID)), zap.Stringer("bounds", r.Bounds), zap.Float64s("thresholds", thresholds))
	t.schedule()
	return nil
}

// Unobserve stops tracking id. Unknown ids are ignored.
func (t *Tracker) Unobserve(id ID) {
	if _, ok := t.regions[id]; !ok {
		return
	}
	delete(t.regions, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	t.logger.Debug("unobserve", zap.String("id", string(id)))
}

// Disconnect stops tracking every region. Subscribers stay registered.
func (t *Tracker) Disconnect() {
	clear(t.regions)
	t.order = nil
}

// Refresh replaces the bounds snapshot of id and schedules a pass. Unknown
// ids are ignored.
func (t *Tracker) Refresh(id ID, bounds Rect) {
	r, ok := t.regions[id]
	if !ok || r.bounds == bounds {
		return
	}
	r.bounds = bounds
	t.schedule()
}

// SetViewport sets the viewport explicitly and schedules a pass over all
// regions. An explicit viewport takes precedence over a ViewportProvider.
func (t *Tracker) SetViewport(bounds Rect) {
	vp := bounds
	t.viewport = &vp
	t.schedule()
}

// Invalidate signals that geometry may have changed, e.g. after a scroll or
// resize, and schedules a pass.
func (t *Tracker) Invalidate() {
	t.schedule()
}

// Subscribe registers fn to receive one batch per pass that has changes.
// Listeners run synchronously in registration order. A listener added while
// a batch is being delivered first runs on the next pass. The slice passed
// to fn is shared between listeners and must not be modified.
func (t *Tracker) Subscribe(fn func([]Change)) Unsubscribe {
	return t.listeners.add(fn)
}

// TakeRecords runs a pass immediately and returns its changes without
// delivering them to subscribers. Any pass pending for the current tick is
// consumed.
func (t *Tracker) TakeRecords() []Change {
	t.pending.Store(false)
	return t.compute()
}

// State returns the last reported state of id. ok is false when id is not
// observed or has not been reported yet.
func (t *Tracker) State(id ID) (state State, ok bool) {
	r, exists := t.regions[id]
	if !exists || !r.reported {
		return State{}, false
	}
	return r.state, true
}

// Len returns the number of observed regions.
func (t *Tracker) Len() int {
	return len(t.order)
}

// Close disconnects every region, drops all subscribers and stops listening
// to the viewport provider. Close is idempotent.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.Disconnect()
	t.listeners.clear()
	if t.cancelProvider != nil {
		t.cancelProvider()
		t.cancelProvider = nil
	}
}

// schedule requests a pass on the next tick unless one is already pending.
func (t *Tracker) schedule() {
	if t.closed {
		return
	}
	if t.pending.CompareAndSwap(false, true) {
		t.sched.Schedule(t.runPass)
	}
}

// runPass is the scheduled callback. It is a no-op when the pending pass was
// already consumed by TakeRecords.
func (t *Tracker) runPass() {
	if !t.pending.Swap(false) {
		return
	}
	changes := t.compute()
	if len(changes) == 0 {
		return
	}
	for _, ln := range t.listeners.snapshot() {
		if ln.active {
			ln.fn(changes)
		}
	}
}

// compute recomputes every region against the current viewport and returns
// the regions that changed materially.
func (t *Tracker) compute() []Change {
	if t.closed {
		return nil
	}
	root, ok := t.rootBounds()
	if !ok {
		return nil
	}
	t.passes++

	var changes []Change
	var done []ID
	for _, id := range t.order {
		r := t.regions[id]
		inter, ratio := r.bounds.Overlap(root)
		st := State{Intersecting: !inter.IsEmpty(), Ratio: ratio}
		idx := thresholdIndex(st, r.thresholds)
		if r.reported && idx == r.index {
			continue
		}
		r.reported = true
		r.state = st
		r.index = idx
		changes = append(changes, Change{
			ID:               id,
			State:            st,
			Bounds:           r.bounds,
			RootBounds:       root,
			IntersectionRect: inter,
			Pass:             t.passes,
		})
		if r.once && st.Intersecting {
			done = append(done, id)
		}
	}
	for _, id := range done {
		t.Unobserve(id)
	}

	t.logger.Debug("pass",
		zap.Uint64("pass", t.passes),
		zap.Stringer("root", root),
		zap.Int("regions", len(t.order)),
		zap.Int("changes", len(changes)),
	)
	return changes
}

// rootBounds snapshots the viewport and applies the root margin. ok is false
// when no viewport can be read; regions then stay unreported.
func (t *Tracker) rootBounds() (Rect, bool) {
	if t.viewport != nil {
		return t.margin.Apply(*t.viewport), true
	}
	if t.provider == nil {
		return Rect{}, false
	}
	b, err := t.provider.CurrentBounds()
	if err != nil {
		t.logger.Debug("viewport read failed, skipping pass", zap.Error(err))
		return Rect{}, false
	}
	return t.margin.Apply(b), true
}
