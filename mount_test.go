package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMounter_MountAssignsIDs(t *testing.T) {
	tr, sched, rec := newTestTracker(t, WithViewport(NewRect(0, 0, 100, 100)))
	m := NewMounter(tr, "card")

	first, err := m.Mount(NewRect(0, 0, 10, 10), Thresholds(0.1))
	require.NoError(t, err)
	second, err := m.Mount(NewRect(0, 200, 10, 10))
	require.NoError(t, err)

	assert.Equal(t, ID("card-1"), first)
	assert.Equal(t, ID("card-2"), second)
	assert.Equal(t, 2, tr.Len())

	sched.Tick()
	require.Len(t, rec.batches, 1)
	assert.Len(t, rec.last(), 2)

	m.Unmount(first)
	m.Unmount(first)
	assert.Equal(t, 1, tr.Len())
}

func TestMounter_MountRejectsBadThresholds(t *testing.T) {
	tr, _, _ := newTestTracker(t, WithViewport(NewRect(0, 0, 100, 100)))
	m := NewMounter(tr, "card")

	_, err := m.Mount(NewRect(0, 0, 10, 10), Thresholds(2))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	assert.Equal(t, 0, tr.Len())
}

func TestMounter_KeyedSweep(t *testing.T) {
	tr, sched, rec := newTestTracker(t, WithViewport(NewRect(0, 0, 100, 100)))
	m := NewMounter(tr, "")

	render := func(keys map[string]Rect) {
		t.Helper()
		for key, bounds := range keys {
			_, err := m.MountKeyed(key, bounds)
			require.NoError(t, err)
		}
	}

	render(map[string]Rect{
		"a": NewRect(0, 0, 10, 10),
		"b": NewRect(0, 20, 10, 10),
		"c": NewRect(0, 40, 10, 10),
	})
	assert.Equal(t, 0, m.Sweep())
	sched.Tick()
	require.Len(t, rec.batches, 1)
	rec.reset()

	// Second render drops "b" and moves "c" out of view.
	render(map[string]Rect{
		"a": NewRect(0, 0, 10, 10),
		"c": NewRect(0, 400, 10, 10),
	})
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 2, tr.Len())
	_, ok := tr.State("b")
	assert.False(t, ok)

	sched.Tick()
	require.Len(t, rec.batches, 1)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, ID("c"), rec.last()[0].ID)
	assert.False(t, rec.last()[0].State.Intersecting)

	// An empty render sweeps everything.
	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 0, tr.Len())
}

func TestMounter_KeyedOnceIsNotReobserved(t *testing.T) {
	tr, sched, rec := newTestTracker(t, WithViewport(NewRect(0, 0, 100, 100)))
	m := NewMounter(tr, "")

	_, err := m.MountKeyed("img", NewRect(0, 0, 10, 10), OnceVisible())
	require.NoError(t, err)
	sched.Tick()
	require.Len(t, rec.batches, 1)
	assert.Equal(t, 0, tr.Len(), "once region finished")

	_, err = m.MountKeyed("img", NewRect(0, 0, 10, 10), OnceVisible())
	require.NoError(t, err)
	sched.Tick()
	assert.Len(t, rec.batches, 1)
	assert.Equal(t, 0, tr.Len())
}
