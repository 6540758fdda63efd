//go:build !linux

package viewer

// resetTerminalMode has no portable termios access here; tcell's Fini is all
// the cleanup available
func resetTerminalMode() error { return nil }
