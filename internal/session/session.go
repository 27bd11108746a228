// Package session wires the locale precheck, destination file, writer
// backend, recorder, and PTY supervisor together into one recording run.
// Grounded on bridge.RunDeviceBridge's "build options, defer cleanup, run"
// shape from the teacher.
package session

import (
	"fmt"
	"os"
	"strconv"

	"github.com/srg/termrec/internal/config"
	"github.com/srg/termrec/internal/locale"
	"github.com/srg/termrec/internal/ptycore"
	"github.com/srg/termrec/internal/recorder"
)

// FileConflictError is returned when the destination exists, is non-empty,
// and neither --append nor --overwrite was supplied (spec.md §7, §9).
type FileConflictError struct {
	Filename string
}

func (e *FileConflictError) Error() string {
	return fmt.Sprintf("%s already exists; use --append or --overwrite", e.Filename)
}

// resolveFileMode implements the file semantics of spec.md §6: an existing
// empty file behaves like --overwrite; an existing non-empty file with
// neither flag set is a conflict; a missing file is always created fresh.
func resolveFileMode(filename string, append, overwrite bool) (effectiveAppend bool, err error) {
	info, statErr := os.Stat(filename)
	switch {
	case os.IsNotExist(statErr):
		return false, nil
	case statErr != nil:
		return false, statErr
	case info.Size() == 0:
		return false, nil
	case append:
		return true, nil
	case overwrite:
		return false, nil
	default:
		return false, &FileConflictError{Filename: filename}
	}
}

// openDestination opens filename per the resolved mode and returns the open
// file plus whether the session is continuing a prior one (append).
func openDestination(filename string, append, overwrite bool) (*os.File, bool, error) {
	effAppend, err := resolveFileMode(filename, append, overwrite)
	if err != nil {
		return nil, false, err
	}

	flags := os.O_WRONLY
	if effAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(filename, flags, 0644)
	if err != nil {
		return nil, false, err
	}
	return f, effAppend, nil
}

// captureEnv returns the current values of the named environment variables
// that are actually set, for embedding in the event-log header.
func captureEnv(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Run executes one full recording session per spec.md §6 and returns the
// process exit code to use.
func Run(opts *config.RecordOptions) (int, error) {
	if err := locale.CheckUTF8(); err != nil {
		return 1, err
	}

	file, isAppend, err := openDestination(opts.Filename, opts.Append, opts.Overwrite)
	if err != nil {
		return 1, err
	}
	defer file.Close()

	var rec ptycore.Recorder
	if opts.Raw {
		rec = recorder.NewRawWriter(file)
	} else {
		var baseOffset float64
		if isAppend {
			baseOffset, _ = recorder.ProbeDuration(opts.Filename)
		}
		rec = recorder.NewEventWriter(file, recorder.EventWriterOptions{
			Append:        isAppend,
			BaseOffset:    baseOffset,
			CaptureInput:  opts.Stdin,
			Title:         opts.Title,
			Env:           captureEnv(opts.EnvVars),
			IdleTimeLimit: opts.IdleTimeLimit,
		})
	}

	argv := ptycore.BuildArgv(opts.Command)
	env := ptycore.BuildEnv()

	return ptycore.Supervise(ptycore.Options{
		Argv:         argv,
		Env:          env,
		ColsOverride: opts.Cols,
		RowsOverride: opts.Rows,
		Recorder:     rec,
	})
}

// FormatIdleTimeLimit renders an idle-time-limit flag value for notices.
func FormatIdleTimeLimit(v *float64) string {
	if v == nil {
		return "none"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64) + "s"
}
