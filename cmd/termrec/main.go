package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "termrec",
	Short: "Record a terminal session to a file",
	Long: `termrec spawns a command inside a pseudo-terminal, shuttles bytes
between your terminal and the child process, and feeds a timestamped
record of the session to a recorder sink.

Use "termrec rec <file>" to start recording.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		var ec *exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		fmt.Fprintf(os.Stderr, "termrec: %s\n", FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	// main() prints clean, prefixed errors; don't let Cobra double up.
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(recCmd)

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}
