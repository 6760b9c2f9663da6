//go:build unix

package visibility

import (
	"os"

	"golang.org/x/sys/unix"
)

// getTerminalSize returns the terminal dimensions.
func getTerminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// ResizeSignals returns the signals delivered when the terminal is resized.
func ResizeSignals() []os.Signal {
	return []os.Signal{unix.SIGWINCH}
}
