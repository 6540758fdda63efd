//go:build linux

package viewer

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ttyPath is the controlling terminal; it stays reachable when stdio is redirected
var ttyPath = "/dev/tty"

// resetTerminalMode puts the controlling terminal back into cooked mode after
// the screen died without Fini: echo, line editing, signals and output
// post-processing on.
func resetTerminalMode() error {
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Iflag |= unix.ICRNL
	t.Oflag |= unix.OPOST
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}
