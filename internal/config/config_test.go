package config

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visibility "github.com/grindlemire/go-visibility"
)

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, Size{Width: DefaultViewportWidth, Height: DefaultViewportHeight}, f.Viewport)
	assert.Equal(t, DefaultFrameRate, f.FrameRate)
	assert.Equal(t, Scroll{Step: DefaultScrollStep, Steps: DefaultScrollSteps, Interval: DefaultScrollInterval}, f.Scroll)
	assert.Equal(t, []float64{0.1}, f.Thresholds)
	require.NotNil(t, f.Stack)
	assert.Equal(t, 5, f.Stack.Count)
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
viewport:
  width: 100
  height: 30
root_margin: "0 0 50% 0"
thresholds: [0, 0.5]
frame_rate: 30
scroll:
  step: 2
  steps: 10
  interval: 500ms
regions:
  - id: hero
    x: 0
    y: 0
    width: 100
    height: 10
  - id: footer-image
    y: 200
    width: 40
    height: 20
    thresholds: [0.9]
    once: true
`)
	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, f.Scroll.Interval)
	assert.Nil(t, f.Stack, "explicit regions replace the default stack")

	m, err := f.Margin()
	require.NoError(t, err)
	assert.Equal(t, visibility.Percent(50), m.Bottom)

	want := []visibility.Region{
		{ID: "hero", Bounds: visibility.NewRect(0, 0, 100, 10), Thresholds: []float64{0, 0.5}},
		{ID: "footer-image", Bounds: visibility.NewRect(0, 200, 40, 20), Thresholds: []float64{0.9}, Once: true},
	}
	if diff := cmp.Diff(want, f.ObservedRegions()); diff != "" {
		t.Errorf("ObservedRegions() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Size{Width: 100, Height: 220}, f.ContentSize())
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("viewport: [1, 2"))
	require.Error(t, err)
}

func TestObservedRegions_Stack(t *testing.T) {
	f := &File{
		Thresholds: []float64{0.25},
		Stack:      &Stack{Prefix: "card", Count: 3, X: 5, Offset: 10, Width: 20, Height: 4, Gap: 6},
	}
	f.applyDefaults()

	got := f.ObservedRegions()
	want := []visibility.Region{
		{ID: "card-1", Bounds: visibility.NewRect(5, 10, 20, 4), Thresholds: []float64{0.25}},
		{ID: "card-2", Bounds: visibility.NewRect(5, 20, 20, 4), Thresholds: []float64{0.25}},
		{ID: "card-3", Bounds: visibility.NewRect(5, 30, 20, 4), Thresholds: []float64{0.25}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ObservedRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	type tc struct {
		mutate  func(f *File)
		wantErr error
	}

	tests := map[string]tc{
		"defaults are valid": {
			mutate: func(f *File) {},
		},
		"zero width viewport": {
			mutate:  func(f *File) { f.Viewport.Width = 0 },
			wantErr: ErrInvalidViewport,
		},
		"frame rate too high": {
			mutate:  func(f *File) { f.FrameRate = 500 },
			wantErr: ErrInvalidFrameRate,
		},
		"negative steps": {
			mutate:  func(f *File) { f.Scroll.Steps = -1 },
			wantErr: ErrInvalidScroll,
		},
		"bad margin": {
			mutate:  func(f *File) { f.RootMargin = "10em" },
			wantErr: visibility.ErrInvalidMargin,
		},
		"page threshold above one": {
			mutate:  func(f *File) { f.Thresholds = []float64{1.5} },
			wantErr: ErrInvalidThreshold,
		},
		"region without id": {
			mutate:  func(f *File) { f.Regions = []Region{{Width: 1, Height: 1}} },
			wantErr: ErrInvalidRegion,
		},
		"region negative size": {
			mutate:  func(f *File) { f.Regions = []Region{{ID: "a", Width: -1}} },
			wantErr: ErrInvalidRegion,
		},
		"duplicate region ids": {
			mutate:  func(f *File) { f.Regions = []Region{{ID: "a"}, {ID: "a"}} },
			wantErr: ErrDuplicateRegion,
		},
		"region collides with stack": {
			mutate:  func(f *File) { f.Regions = []Region{{ID: "card-2"}} },
			wantErr: ErrDuplicateRegion,
		},
		"stack threshold below zero": {
			mutate:  func(f *File) { f.Stack.Thresholds = []float64{-0.1} },
			wantErr: ErrInvalidThreshold,
		},
		"nothing to observe": {
			mutate:  func(f *File) { f.Stack = nil },
			wantErr: ErrNoRegions,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := Default()
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestContentSize_AtLeastViewport(t *testing.T) {
	f := &File{Regions: []Region{{ID: "a", Width: 2, Height: 2}}}
	f.applyDefaults()
	assert.Equal(t, f.Viewport, f.ContentSize())
}
