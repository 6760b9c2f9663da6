package visibility

// ViewportProvider supplies the current viewport bounds in document
// coordinates. A provider that cannot read the viewport returns an error
// (typically wrapping ErrViewportUnavailable); the tracker then skips the
// pass and leaves regions unreported.
type ViewportProvider interface {
	CurrentBounds() (Rect, error)
}

// ChangeNotifier is implemented by providers that can signal that the
// viewport may have moved. The tracker treats the signal purely as a trigger
// and re-reads CurrentBounds on its next pass.
type ChangeNotifier interface {
	// OnChange registers fn and returns a function that removes it.
	OnChange(fn func()) (cancel func())
}

// StaticViewport is a provider with fixed bounds.
type StaticViewport Rect

// CurrentBounds returns the fixed bounds.
func (v StaticViewport) CurrentBounds() (Rect, error) {
	return Rect(v), nil
}

// ScrollViewport translates a base provider's bounds by a scroll offset,
// the way a scrollable frame moves over a taller document.
//
// Scroll methods must be called from the loop goroutine, like the tracker.
type ScrollViewport struct {
	base      ViewportProvider
	x, y      int
	contentW  int
	contentH  int
	listeners listenerList[func()]
}

// NewScrollViewport creates a ScrollViewport at offset (0, 0) over base.
func NewScrollViewport(base ViewportProvider) *ScrollViewport {
	return &ScrollViewport{base: base}
}

// CurrentBounds returns the base bounds moved by the scroll offset.
func (v *ScrollViewport) CurrentBounds() (Rect, error) {
	b, err := v.base.CurrentBounds()
	if err != nil {
		return Rect{}, err
	}
	return b.Translate(v.x, v.y), nil
}

// OnChange registers fn to run whenever the offset changes.
func (v *ScrollViewport) OnChange(fn func()) func() {
	return v.listeners.add(fn)
}

// Offset returns the current scroll offset.
func (v *ScrollViewport) Offset() (x, y int) {
	return v.x, v.y
}

// SetContentSize sets the document size used to clamp the offset. A zero
// dimension disables clamping on that axis.
func (v *ScrollViewport) SetContentSize(width, height int) {
	v.contentW, v.contentH = width, height
	v.ScrollTo(v.x, v.y)
}

// ScrollBy moves the offset by (dx, dy).
func (v *ScrollViewport) ScrollBy(dx, dy int) {
	v.ScrollTo(v.x+dx, v.y+dy)
}

// ScrollTo moves the offset to (x, y), clamped to the content size, and
// notifies change listeners if the offset moved.
func (v *ScrollViewport) ScrollTo(x, y int) {
	x, y = v.clamp(x, y)
	if x == v.x && y == v.y {
		return
	}
	v.x, v.y = x, y
	for _, ln := range v.listeners.snapshot() {
		if ln.active {
			ln.fn()
		}
	}
}

// MaxOffset returns the largest offset allowed by the content size. ok is
// false when the base bounds cannot be read.
func (v *ScrollViewport) MaxOffset() (x, y int, ok bool) {
	b, err := v.base.CurrentBounds()
	if err != nil {
		return 0, 0, false
	}
	return max(v.contentW-b.Width, 0), max(v.contentH-b.Height, 0), true
}

func (v *ScrollViewport) clamp(x, y int) (int, int) {
	maxX, maxY, ok := v.MaxOffset()
	if !ok {
		return x, y
	}
	if v.contentW > 0 {
		x = min(max(x, 0), maxX)
	}
	if v.contentH > 0 {
		y = min(max(y, 0), maxY)
	}
	return x, y
}
