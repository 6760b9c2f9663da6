package visibility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollViewport_TranslatesBase(t *testing.T) {
	v := NewScrollViewport(StaticViewport(NewRect(0, 0, 80, 24)))

	v.ScrollBy(0, 10)
	v.ScrollBy(5, 2)

	got, err := v.CurrentBounds()
	require.NoError(t, err)
	assert.Equal(t, NewRect(5, 12, 80, 24), got)

	x, y := v.Offset()
	assert.Equal(t, 5, x)
	assert.Equal(t, 12, y)
}

func TestScrollViewport_Clamp(t *testing.T) {
	type tc struct {
		contentW, contentH int
		scrollX, scrollY   int
		wantX, wantY       int
	}

	// Frame is 80x24.
	tests := map[string]tc{
		"within content": {
			contentH: 100, scrollY: 50,
			wantY: 50,
		},
		"past bottom": {
			contentH: 100, scrollY: 500,
			wantY: 76,
		},
		"above top": {
			contentH: 100, scrollY: -5,
			wantY: 0,
		},
		"content shorter than frame": {
			contentH: 10, scrollY: 3,
			wantY: 0,
		},
		"unclamped axis": {
			contentH: 100, scrollX: -7, scrollY: 1,
			wantX: -7, wantY: 1,
		},
		"both axes": {
			contentW: 100, contentH: 100, scrollX: 50, scrollY: 90,
			wantX: 20, wantY: 76,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := NewScrollViewport(StaticViewport(NewRect(0, 0, 80, 24)))
			v.SetContentSize(tt.contentW, tt.contentH)
			v.ScrollTo(tt.scrollX, tt.scrollY)

			x, y := v.Offset()
			assert.Equal(t, tt.wantX, x, "x")
			assert.Equal(t, tt.wantY, y, "y")
		})
	}
}

func TestScrollViewport_NotifiesOnlyOnMove(t *testing.T) {
	v := NewScrollViewport(StaticViewport(NewRect(0, 0, 80, 24)))
	v.SetContentSize(0, 30)

	var calls int
	cancel := v.OnChange(func() { calls++ })

	v.ScrollBy(0, 4)
	v.ScrollBy(0, 100) // clamped to 6
	v.ScrollBy(0, 1)   // already at max
	assert.Equal(t, 2, calls)

	cancel()
	v.ScrollTo(0, 0)
	assert.Equal(t, 2, calls)
}

func TestScrollViewport_PropagatesBaseError(t *testing.T) {
	base := &flakyViewport{err: errNoTerminal}
	v := NewScrollViewport(base)
	v.SetContentSize(0, 100)
	v.ScrollTo(0, 500)

	_, err := v.CurrentBounds()
	assert.ErrorIs(t, err, errNoTerminal)

	_, y := v.Offset()
	assert.Equal(t, 500, y, "offset is not clamped while the base is unreadable")
}

func TestTerminalViewport_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	_, err = NewTerminalViewport(f).CurrentBounds()
	assert.ErrorIs(t, err, ErrViewportUnavailable)
}
