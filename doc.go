// Package visibility tracks which rectangular regions of a scrolling document
// intersect a viewport, and notifies subscribers in coalesced batches.
//
// Users import this single package for the complete public API: the tracker,
// schedulers, viewport providers, watchers, and the mount helper used by
// renderers.
//
// A Tracker never recomputes on its own. Geometry-affecting events (Observe,
// Refresh, SetViewport, Invalidate, provider change notifications) only mark
// a pass as pending; the Scheduler runs at most one pass per tick,
// and each pass delivers a single batch containing only the regions whose
// intersecting flag changed or whose ratio crossed one of its thresholds.
//
// Example:
//
//	sched := visibility.NewManualScheduler()
//	tr, _ := visibility.NewTracker(sched, visibility.WithViewport(visibility.NewRect(0, 0, 100, 100)))
//	tr.Subscribe(func(changes []visibility.Change) {
//	    for _, c := range changes {
//	        fmt.Println(c.ID, c.State.Intersecting, c.State.Ratio)
//	    }
//	})
//	_ = tr.Observe(visibility.Region{ID: "card-1", Bounds: visibility.NewRect(0, 0, 50, 50), Thresholds: []float64{0.1}})
//	sched.Tick() // card-1 true 1
package visibility
