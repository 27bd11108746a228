// Package config holds the parsed CLI options for the rec subcommand and
// the logging setup shared by the command tree, grounded on the teacher's
// pkg/config.Config and cmd/blim/logging.go.
package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RecordOptions is the fully-resolved set of options for one recording
// session, populated from the rec subcommand's flags (spec.md §6).
type RecordOptions struct {
	Filename      string
	Stdin         bool
	Append        bool
	Raw           bool
	Overwrite     bool
	Command       string
	EnvVars       []string // names to capture into the header, default SHELL,TERM
	Title         string
	IdleTimeLimit *float64
	Cols          *uint16
	Rows          *uint16
	Quiet         bool

	LogLevel logrus.Level
}

// DefaultRecordOptions returns the flag defaults from spec.md §6.
func DefaultRecordOptions() *RecordOptions {
	return &RecordOptions{
		EnvVars:  []string{"SHELL", "TERM"},
		LogLevel: logrus.PanicLevel,
	}
}

// NewLogger builds a logrus.Logger configured the way the teacher's
// configureLogger/Config.NewLogger does: text formatter, RFC3339
// timestamps, level taken from the resolved options.
func (o *RecordOptions) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(o.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger
}

// ParseLogLevel maps a --log-level string to a logrus.Level, mirroring
// cmd/blim/logging.go's configureLogger.
func ParseLogLevel(s string) (logrus.Level, error) {
	switch s {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return 0, &InvalidLogLevelError{Value: s}
	}
}

// InvalidLogLevelError is returned by ParseLogLevel for an unrecognized
// --log-level value.
type InvalidLogLevelError struct {
	Value string
}

func (e *InvalidLogLevelError) Error() string {
	return "invalid log level: " + e.Value + " (must be debug, info, warn, or error)"
}
