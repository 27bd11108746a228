package ptycore

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// WindowSize is a (cols, rows) pair. Pixel dimensions are always zero; the
// supervisor never measures or reports them.
type WindowSize struct {
	Cols uint16
	Rows uint16
}

// defaultWindowSize is the sentinel returned when the kernel refuses to
// report a real size (e.g. the controlling tty isn't actually a terminal).
var defaultWindowSize = WindowSize{Cols: 80, Rows: 24}

// WithOverride returns a copy of size with either axis replaced when the
// corresponding pointer is non-nil.
func (size WindowSize) WithOverride(cols, rows *uint16) WindowSize {
	out := size
	if cols != nil {
		out.Cols = *cols
	}
	if rows != nil {
		out.Rows = *rows
	}
	return out
}

// OpenControllingTTY opens /dev/tty for read+write. It fails with a
// KindCannotOpenTTY error when the process has no controlling terminal.
func OpenControllingTTY() (*os.File, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, newErr(KindCannotOpenTTY, err)
	}
	return f, nil
}

// QueryWindowSize issues TIOCGWINSZ on fd. On failure it returns the 80x24
// sentinel rather than propagating an error — resize information is always
// advisory.
func QueryWindowSize(fd int) WindowSize {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return defaultWindowSize
	}
	return WindowSize{Cols: ws.Col, Rows: ws.Row}
}

// SetPTYSize applies TIOCSWINSZ to the PTY master. Failure is ignored:
// resizing is best-effort and must never abort the session.
func SetPTYSize(masterFd int, size WindowSize) {
	ws := &unix.Winsize{Col: size.Cols, Row: size.Rows}
	_ = unix.IoctlSetWinsize(masterFd, unix.TIOCSWINSZ, ws)
}

// SetNonBlocking sets O_NONBLOCK on fd.
func SetNonBlocking(fd int) error {
	return syscall.SetNonblock(fd, true)
}

// RawMode is a scoped resource: it saves a terminal's line-discipline state
// on creation and guarantees it can be put back with Restore. Callers must
// defer Restore() immediately after EnterRawMode succeeds so that every exit
// path (normal return, error return, panic) restores cooked mode.
type RawMode struct {
	fd    int
	saved *term.State
}

// EnterRawMode saves fd's current termios settings and switches it to raw
// mode (no line buffering, no echo, no signal generation).
func EnterRawMode(fd int) (*RawMode, error) {
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, saved: saved}, nil
}

// Restore reverts the terminal to the state captured by EnterRawMode. Safe
// to call multiple times; only the first call has effect.
func (r *RawMode) Restore() error {
	if r == nil || r.saved == nil {
		return nil
	}
	saved := r.saved
	r.saved = nil
	return term.Restore(r.fd, saved)
}
