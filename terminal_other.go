//go:build !unix && !windows

package visibility

import (
	"errors"
	"os"
)

func getTerminalSize(fd int) (width, height int, err error) {
	return 0, 0, errors.New("terminal size not supported on this platform")
}

// ResizeSignals returns nil on platforms without a resize signal.
func ResizeSignals() []os.Signal {
	return nil
}
