package main

import (
	"fmt"
	"io"
	"strings"

	visibility "github.com/grindlemire/go-visibility"
	"github.com/grindlemire/go-visibility/internal/config"
)

// mountPage renders the page description into m: every region is mounted
// under its id and regions missing from f are swept.
func mountPage(m *visibility.Mounter, f *config.File) (removed int, err error) {
	for _, r := range f.ObservedRegions() {
		opts := []visibility.MountOption{visibility.Thresholds(r.Thresholds...)}
		if r.Once {
			opts = append(opts, visibility.OnceVisible())
		}
		if _, err := m.MountKeyed(string(r.ID), r.Bounds, opts...); err != nil {
			return 0, err
		}
	}
	return m.Sweep(), nil
}

// writeBatch prints one line per change followed by the visible set, each
// prefixed with label.
func writeBatch(w io.Writer, label string, changes []visibility.Change, visible *visibility.VisibleSet) error {
	var b strings.Builder
	for _, c := range changes {
		status := "hidden"
		if c.State.Intersecting {
			status = "visible"
		}
		fmt.Fprintf(&b, "%s %s %s ratio=%.2f\n", label, c.ID, status, c.State.Ratio)
	}
	fmt.Fprintf(&b, "%s visible=%v\n", label, visible.IDs())
	_, err := io.WriteString(w, b.String())
	return err
}
