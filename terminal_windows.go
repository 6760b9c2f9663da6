//go:build windows

package visibility

import (
	"os"

	"golang.org/x/sys/windows"
)

// getTerminalSize returns the terminal dimensions.
func getTerminalSize(fd int) (width, height int, err error) {
	h := windows.Handle(fd)
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return 0, 0, err
	}

	width = int(info.Window.Right - info.Window.Left + 1)
	height = int(info.Window.Bottom - info.Window.Top + 1)
	return width, height, nil
}

// ResizeSignals returns nil: the Windows console has no resize signal, so
// callers poll with a timer instead.
func ResizeSignals() []os.Signal {
	return nil
}
