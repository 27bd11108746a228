package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/srg/termrec/internal/ptycore"
)

// FormatVersion is the event-log format version written in the header, per
// spec.md §6.
const FormatVersion = 2

// Header is the single JSON object written as line 1 of an event-log file.
type Header struct {
	Version       int               `json:"version"`
	Width         uint16            `json:"width"`
	Height        uint16            `json:"height"`
	Timestamp     int64             `json:"timestamp"`
	Title         string            `json:"title,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
	IdleTimeLimit float64           `json:"idle_time_limit,omitempty"`
}

// EventKind is one of the three single-character event tags in the log.
type EventKind string

const (
	EventOutput EventKind = "o"
	EventInput  EventKind = "i"
	EventResize EventKind = "r"
)

// EventWriterOptions configures a new EventWriter.
type EventWriterOptions struct {
	// Append indicates the header was already written by a previous
	// session and must not be emitted again.
	Append bool
	// BaseOffset is added to every event's elapsed time; it's the
	// previous session's last event time, obtained by probing the
	// existing file when Append is set.
	BaseOffset float64
	// CaptureInput controls whether Input events are actually persisted.
	// The reactor calls Input unconditionally; only --stdin sessions set
	// this true.
	CaptureInput bool
	Title        string
	Env          map[string]string
	// IdleTimeLimit is omitted from the header when nil.
	IdleTimeLimit *float64
	// Now returns the wall-clock timestamp for the header and the
	// monotonic reference point for event times. Defaults to time.Now.
	Now func() time.Time
}

// EventWriter is the timestamped JSON event-log sink (spec.md §4.F.2).
type EventWriter struct {
	bw   *bufio.Writer
	opts EventWriterOptions
	now  func() time.Time

	start   time.Time
	started bool
}

// NewEventWriter wraps w as an event-log recorder sink.
func NewEventWriter(w io.Writer, opts EventWriterOptions) *EventWriter {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &EventWriter{
		bw:   bufio.NewWriter(w),
		opts: opts,
		now:  now,
	}
}

func (e *EventWriter) Start(size ptycore.WindowSize) error {
	e.start = e.now()
	e.started = true

	if e.opts.Append {
		return nil
	}

	h := Header{
		Version:   FormatVersion,
		Width:     size.Cols,
		Height:    size.Rows,
		Timestamp: e.start.Unix(),
		Title:     e.opts.Title,
		Env:       e.opts.Env,
	}
	if e.opts.IdleTimeLimit != nil {
		h.IdleTimeLimit = *e.opts.IdleTimeLimit
	}

	b, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := e.bw.Write(b); err != nil {
		return err
	}
	if err := e.bw.WriteByte('\n'); err != nil {
		return err
	}
	return e.bw.Flush()
}

func (e *EventWriter) Output(data []byte) {
	e.writeEvent(EventOutput, string(data))
}

func (e *EventWriter) Input(data []byte) {
	if !e.opts.CaptureInput {
		return
	}
	e.writeEvent(EventInput, string(data))
}

func (e *EventWriter) Resize(size ptycore.WindowSize) {
	e.writeEvent(EventResize, fmt.Sprintf("%dx%d", size.Cols, size.Rows))
}

func (e *EventWriter) writeEvent(kind EventKind, payload string) {
	if !e.started {
		return
	}
	t := e.opts.BaseOffset + e.now().Sub(e.start).Seconds()

	b, err := json.Marshal([]any{t, string(kind), payload})
	if err != nil {
		return
	}
	if _, err := e.bw.Write(b); err != nil {
		return
	}
	if err := e.bw.WriteByte('\n'); err != nil {
		return
	}
	_ = e.bw.Flush()
}
