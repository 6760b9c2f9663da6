package visibility

import (
	"fmt"
	"os"
)

// TerminalViewport reports the size of the terminal attached to a file as a
// viewport at the origin. Reading fails with ErrViewportUnavailable when the
// file is not a terminal.
type TerminalViewport struct {
	fd int
}

// NewTerminalViewport creates a provider for the terminal behind f.
func NewTerminalViewport(f *os.File) *TerminalViewport {
	return &TerminalViewport{fd: int(f.Fd())}
}

// CurrentBounds returns (0, 0, columns, rows).
func (v *TerminalViewport) CurrentBounds() (Rect, error) {
	w, h, err := getTerminalSize(v.fd)
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrViewportUnavailable, err)
	}
	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("%w: terminal reports %dx%d", ErrViewportUnavailable, w, h)
	}
	return NewRect(0, 0, w, h), nil
}
