package visibility

// Unsubscribe is a handle to remove a listener. Call it to prevent future
// batch deliveries to the associated listener. Calling it more than once is
// a no-op.
type Unsubscribe func()

// listener represents a registered callback.
type listener[F any] struct {
	fn     F
	active bool
}

// listenerList holds listeners in registration order.
type listenerList[F any] struct {
	list []*listener[F]
}

func (l *listenerList[F]) add(fn F) Unsubscribe {
	ln := &listener[F]{fn: fn, active: true}
	l.list = append(l.list, ln)
	return func() {
		ln.active = false
	}
}

// snapshot returns the active listeners and drops inactive ones so that
// removed callbacks do not accumulate.
func (l *listenerList[F]) snapshot() []*listener[F] {
	active := make([]*listener[F], 0, len(l.list))
	for _, ln := range l.list {
		if ln.active {
			active = append(active, ln)
		}
	}
	l.list = active
	return active
}

func (l *listenerList[F]) clear() {
	for _, ln := range l.list {
		ln.active = false
	}
	l.list = nil
}
