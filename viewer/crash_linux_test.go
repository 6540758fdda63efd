//go:build linux

package viewer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetTerminalMode_NoTTY(t *testing.T) {
	old := ttyPath
	ttyPath = filepath.Join(t.TempDir(), "tty")
	t.Cleanup(func() { ttyPath = old })

	err := resetTerminalMode()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "open ")
}

func TestResetTerminalMode_NotATerminal(t *testing.T) {
	old := ttyPath
	ttyPath = "/dev/null"
	t.Cleanup(func() { ttyPath = old })

	err := resetTerminalMode()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "get termios")
}
