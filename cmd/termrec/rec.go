package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/srg/termrec/internal/config"
	"github.com/srg/termrec/internal/session"
)

// recCmd implements the rec subcommand per spec.md §6.
var recCmd = &cobra.Command{
	Use:   "rec <filename>",
	Short: "Record a terminal session to <filename>",
	Long: `Spawns a shell (or --command) inside a pseudo-terminal and records the
session to <filename>. By default the file is written as a line-oriented
JSON event log; pass --raw to write only the child's output bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRec,
}

var recOpts = config.DefaultRecordOptions()

func init() {
	flags := recCmd.Flags()
	flags.BoolVar(&recOpts.Stdin, "stdin", false, "also capture stdin as input events")
	flags.BoolVar(&recOpts.Append, "append", false, "append to filename instead of overwriting")
	flags.BoolVar(&recOpts.Raw, "raw", false, "write raw output bytes instead of a timestamped event log")
	flags.BoolVar(&recOpts.Overwrite, "overwrite", false, "overwrite filename if it already exists")
	flags.StringVarP(&recOpts.Command, "command", "c", "", "command to record (default: $SHELL)")
	flags.StringSliceVarP(&recOpts.EnvVars, "env", "e", recOpts.EnvVars, "environment variable names to capture in the header")
	flags.StringVarP(&recOpts.Title, "title", "t", "", "title to embed in the header")
	flags.Float64VarP(&idleTimeLimitValue, "idle-time-limit", "i", 0, "idle time limit hint stored in the header, in seconds")
	flags.Uint16Var(&colsValue, "cols", 0, "override terminal width (columns)")
	flags.Uint16Var(&rowsValue, "rows", 0, "override terminal height (rows)")
	flags.BoolVarP(&recOpts.Quiet, "quiet", "q", false, "suppress start/stop notices")

	recCmd.MarkFlagsMutuallyExclusive("append", "overwrite")
}

// idleTimeLimitValue, colsValue, and rowsValue back recOpts' pointer fields,
// which stay nil ("unset") until Cobra reports the flag as Changed.
var (
	idleTimeLimitValue   float64
	colsValue, rowsValue uint16
)

func runRec(cmd *cobra.Command, args []string) error {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	if logLevelStr != "" {
		lvl, err := config.ParseLogLevel(logLevelStr)
		if err != nil {
			return err
		}
		recOpts.LogLevel = lvl
	}
	logger := recOpts.NewLogger()

	recOpts.Filename = args[0]
	if cmd.Flags().Changed("idle-time-limit") {
		v := idleTimeLimitValue
		recOpts.IdleTimeLimit = &v
	}
	if cmd.Flags().Changed("cols") {
		v := colsValue
		recOpts.Cols = &v
	}
	if cmd.Flags().Changed("rows") {
		v := rowsValue
		recOpts.Rows = &v
	}

	cmd.SilenceUsage = true

	notice(recOpts.Quiet, "recording session to %s", recOpts.Filename)
	logger.WithField("filename", recOpts.Filename).Debug("starting session")

	code, err := session.Run(recOpts)
	if err != nil {
		return err
	}

	notice(recOpts.Quiet, "recording saved to %s", recOpts.Filename)

	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}

// notice prints a colorized status line unless quiet is set, mirroring the
// teacher's ProgressPrinter-style terminal notices but without the ticker:
// a pty recording session has exactly two notable moments, start and save.
func notice(quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(color.Output, color.CyanString(format, args...))
}

// exitCodeError carries the child's exit code through cobra's error path so
// main can translate it into os.Exit without printing a message.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return "" }
