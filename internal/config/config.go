package config

import (
	"fmt"
	"math"
	"strconv"
	"time"

	visibility "github.com/grindlemire/go-visibility"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "visibility"

	DefaultViewportWidth  = 80
	DefaultViewportHeight = 24
	DefaultFrameRate      = 60

	// DefaultScrollStep is the number of rows scrolled per step.
	DefaultScrollStep = 4

	// DefaultScrollSteps is how many steps a simulation runs.
	DefaultScrollSteps = 20

	// DefaultScrollInterval is the auto-scroll period of the watch command.
	DefaultScrollInterval = 250 * time.Millisecond
)

// File is the on-disk page description.
type File struct {
	Viewport   Size      `yaml:"viewport"`
	RootMargin string    `yaml:"root_margin"`
	Thresholds []float64 `yaml:"thresholds"`
	FrameRate  int       `yaml:"frame_rate"`
	Scroll     Scroll    `yaml:"scroll"`

	// Regions are observed as given.
	Regions []Region `yaml:"regions"`

	// Stack generates evenly spaced cards below each other, like the
	// observer demo pages.
	Stack *Stack `yaml:"stack"`
}

// Size is a width/height pair in cells.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Scroll controls how the demo moves the viewport.
type Scroll struct {
	Step     int           `yaml:"step"`
	Steps    int           `yaml:"steps"`
	Interval time.Duration `yaml:"interval"`
}

// Region is one explicitly placed region.
type Region struct {
	ID         string    `yaml:"id"`
	X          int       `yaml:"x"`
	Y          int       `yaml:"y"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Thresholds []float64 `yaml:"thresholds"`
	Once       bool      `yaml:"once"`
}

// Stack describes Count cards of Width x Height, the first at row Offset and
// each following one Gap rows below the previous card's bottom edge.
type Stack struct {
	Prefix     string    `yaml:"prefix"`
	Count      int       `yaml:"count"`
	X          int       `yaml:"x"`
	Offset     int       `yaml:"offset"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Gap        int       `yaml:"gap"`
	Thresholds []float64 `yaml:"thresholds"`
	Once       bool      `yaml:"once"`
}

// DefaultStack is the page used when a file defines no regions: five cards
// spaced further apart than the viewport is tall.
func DefaultStack() *Stack {
	return &Stack{
		Prefix: "card",
		Count:  5,
		X:      20,
		Offset: 20,
		Width:  40,
		Height: 8,
		Gap:    24,
	}
}

// Default returns the configuration used when no file is found.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

// applyDefaults fills zero values with defaults.
func (f *File) applyDefaults() {
	if f.Viewport.Width == 0 {
		f.Viewport.Width = DefaultViewportWidth
	}
	if f.Viewport.Height == 0 {
		f.Viewport.Height = DefaultViewportHeight
	}
	if f.FrameRate == 0 {
		f.FrameRate = DefaultFrameRate
	}
	if f.Scroll.Step == 0 {
		f.Scroll.Step = DefaultScrollStep
	}
	if f.Scroll.Steps == 0 {
		f.Scroll.Steps = DefaultScrollSteps
	}
	if f.Scroll.Interval == 0 {
		f.Scroll.Interval = DefaultScrollInterval
	}
	if len(f.Thresholds) == 0 {
		f.Thresholds = []float64{0.1}
	}
	if len(f.Regions) == 0 && f.Stack == nil {
		f.Stack = DefaultStack()
	}
	if f.Stack != nil && f.Stack.Prefix == "" {
		f.Stack.Prefix = "card"
	}
}

// Validate checks the configuration for errors.
func (f *File) Validate() error {
	if f.Viewport.Width <= 0 || f.Viewport.Height <= 0 {
		return ErrInvalidViewport
	}
	if f.FrameRate < 1 || f.FrameRate > 240 {
		return ErrInvalidFrameRate
	}
	if f.Scroll.Steps < 0 || f.Scroll.Interval < 0 {
		return ErrInvalidScroll
	}
	if _, err := f.Margin(); err != nil {
		return err
	}
	if err := validateThresholds("page", f.Thresholds); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, r := range f.Regions {
		if r.ID == "" {
			return fmt.Errorf("%w: regions[%d] has no id", ErrInvalidRegion, i)
		}
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("%w: %q has negative size", ErrInvalidRegion, r.ID)
		}
		if err := validateThresholds(r.ID, r.Thresholds); err != nil {
			return err
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateRegion, r.ID)
		}
		seen[r.ID] = true
	}

	if s := f.Stack; s != nil {
		if s.Count < 0 || s.Width < 0 || s.Height < 0 || s.Gap < 0 {
			return fmt.Errorf("%w: stack dimensions must be non-negative", ErrInvalidRegion)
		}
		if err := validateThresholds("stack", s.Thresholds); err != nil {
			return err
		}
		for i := 1; i <= s.Count; i++ {
			id := stackID(s.Prefix, i)
			if seen[id] {
				return fmt.Errorf("%w: %q", ErrDuplicateRegion, id)
			}
			seen[id] = true
		}
	}

	if len(seen) == 0 {
		return ErrNoRegions
	}
	return nil
}

func validateThresholds(owner string, ts []float64) error {
	for _, t := range ts {
		if math.IsNaN(t) || t < 0 || t > 1 {
			return fmt.Errorf("%w: %s has %v", ErrInvalidThreshold, owner, t)
		}
	}
	return nil
}

// Margin parses RootMargin.
func (f *File) Margin() (visibility.Margin, error) {
	return visibility.ParseMargin(f.RootMargin)
}

// ViewportRect returns the viewport at the origin.
func (f *File) ViewportRect() visibility.Rect {
	return visibility.NewRect(0, 0, f.Viewport.Width, f.Viewport.Height)
}

// ObservedRegions returns every region to observe: explicit regions first, then the
// stack. Regions without thresholds inherit the page thresholds.
func (f *File) ObservedRegions() []visibility.Region {
	var out []visibility.Region
	for _, r := range f.Regions {
		out = append(out, visibility.Region{
			ID:         visibility.ID(r.ID),
			Bounds:     visibility.NewRect(r.X, r.Y, r.Width, r.Height),
			Thresholds: f.thresholdsOr(r.Thresholds),
			Once:       r.Once,
		})
	}
	if s := f.Stack; s != nil {
		y := s.Offset
		for i := 1; i <= s.Count; i++ {
			out = append(out, visibility.Region{
				ID:         visibility.ID(stackID(s.Prefix, i)),
				Bounds:     visibility.NewRect(s.X, y, s.Width, s.Height),
				Thresholds: f.thresholdsOr(s.Thresholds),
				Once:       s.Once,
			})
			y += s.Height + s.Gap
		}
	}
	return out
}

// ContentSize returns the document size: wide and tall enough for every
// region and at least the viewport.
func (f *File) ContentSize() Size {
	size := f.Viewport
	for _, r := range f.ObservedRegions() {
		size.Width = max(size.Width, r.Bounds.Right())
		size.Height = max(size.Height, r.Bounds.Bottom())
	}
	return size
}

func (f *File) thresholdsOr(ts []float64) []float64 {
	if len(ts) > 0 {
		return ts
	}
	return f.Thresholds
}

func stackID(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i)
}
