package visibility

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// batchRecorder collects every batch delivered to a subscriber.
type batchRecorder struct {
	batches [][]Change
}

func (r *batchRecorder) record(changes []Change) {
	r.batches = append(r.batches, changes)
}

func (r *batchRecorder) last() []Change {
	if len(r.batches) == 0 {
		return nil
	}
	return r.batches[len(r.batches)-1]
}

func (r *batchRecorder) reset() {
	r.batches = nil
}

// newTestTracker builds a tracker on a ManualScheduler with a subscribed
// recorder.
func newTestTracker(t *testing.T, opts ...TrackerOption) (*Tracker, *ManualScheduler, *batchRecorder) {
	t.Helper()
	sched := NewManualScheduler()
	tr, err := NewTracker(sched, opts...)
	require.NoError(t, err)
	rec := &batchRecorder{}
	tr.Subscribe(rec.record)
	t.Cleanup(tr.Close)
	return tr, sched, rec
}

// flakyViewport is a provider whose reads can be made to fail.
type flakyViewport struct {
	bounds Rect
	err    error
}

func (v *flakyViewport) CurrentBounds() (Rect, error) {
	if v.err != nil {
		return Rect{}, v.err
	}
	return v.bounds, nil
}

var errNoTerminal = errors.New("not a terminal")
