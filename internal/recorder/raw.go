// Package recorder implements the two Recorder sink backends described in
// spec.md §4.F: a raw byte passthrough and a timestamped JSON event log.
// Both satisfy ptycore.Recorder structurally — there is no shared
// interface type in this package, matching the "capability set" design
// note in spec.md §9: Go interfaces are satisfied implicitly.
package recorder

import (
	"io"

	"github.com/srg/termrec/internal/ptycore"
)

// RawWriter writes every Output slice verbatim to the underlying file, in
// order, with no framing. Input, Resize, and Start are no-ops — raw
// recordings never capture input or resize events.
type RawWriter struct {
	w io.Writer
}

// NewRawWriter wraps w as a raw byte recorder sink.
func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

func (r *RawWriter) Start(ptycore.WindowSize) error { return nil }

func (r *RawWriter) Output(data []byte) {
	_, _ = r.w.Write(data)
}

func (r *RawWriter) Input([]byte)                {}
func (r *RawWriter) Resize(ptycore.WindowSize) {}
