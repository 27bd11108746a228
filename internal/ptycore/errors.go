package ptycore

import "fmt"

// Kind identifies the category of a supervisor failure, allowing callers to
// branch with errors.Is instead of matching on message text.
type Kind string

const (
	// KindNonUTF8Locale means the effective locale does not declare UTF-8.
	KindNonUTF8Locale Kind = "non_utf8_locale"
	// KindCannotOpenTTY means /dev/tty could not be opened.
	KindCannotOpenTTY Kind = "cannot_open_tty"
	// KindPTYAllocationFailed means the PTY master/slave pair could not be created.
	KindPTYAllocationFailed Kind = "pty_allocation_failed"
	// KindForkFailed means the child process could not be started.
	KindForkFailed Kind = "fork_failed"
	// KindIOError means an unrecoverable I/O error occurred on master or tty.
	KindIOError Kind = "io_error"
	// KindSinkError means recorder.Start returned an error.
	KindSinkError Kind = "sink_error"
)

// Error is the sentinel-style error type returned by this package. Compare
// with errors.Is(err, &ptycore.Error{Kind: ptycore.KindCannotOpenTTY}); the
// Is method below matches any *Error of the same Kind.
type Error struct {
	Kind      Kind
	Direction string // "master" or "tty", set only for KindIOError
	Err       error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindIOError && e.Direction != "":
		if e.Err != nil {
			return fmt.Sprintf("%s: %s I/O error: %v", e.Kind, e.Direction, e.Err)
		}
		return fmt.Sprintf("%s: %s I/O error", e.Kind, e.Direction)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, &Error{Kind: KindCannotOpenTTY}) to match any
// *Error with the same Kind, ignoring Direction/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func newIOErr(direction string, cause error) *Error {
	return &Error{Kind: KindIOError, Direction: direction, Err: cause}
}
