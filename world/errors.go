package world

import (
	"errors"
	"fmt"
)

// Load-phase error taxonomy. Every error returned by Parse or LoadFile wraps
// exactly one of these so callers can branch with errors.Is.
var (
	// ErrMalformedHeader marks a count header whose prefix or value is unusable.
	// Non-strict loads recover by leaving the count at zero and logging a warning.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMalformedRecord marks a record field with missing or non-numeric values
	ErrMalformedRecord = errors.New("malformed record")

	// ErrCountMismatch marks a disagreement between a declared header count and the parsed records
	ErrCountMismatch = errors.New("count mismatch")

	// ErrFileNotFound marks a missing world file
	ErrFileNotFound = errors.New("world file not found")
)

// ParseError carries the line a load error was detected on
type ParseError struct {
	Line int   // 1-based; 0 when the error concerns the whole file
	Err  error // one of the sentinel errors above
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func errorf(line int, kind error, format string, args ...any) error {
	return &ParseError{Line: line, Err: kind, Msg: fmt.Sprintf(format, args...)}
}
