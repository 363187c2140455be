// Package cli implements the xgrid command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "xgrid" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xgrid",
		Short: "Build crossword grid patterns",
		Long: "xgrid edits a symmetric crossword grid: toggle black squares and circles,\n" +
			"see the entry numbering and count, export the pattern and keep its history.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .xgrid-db)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides log_level in config.yaml)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newInitCmd(),
		newVersionCmd(),
		newShowCmd(),
		newToggleCmd(),
		newCircleCmd(),
		newResetCmd(),
		newCopyCmd(),
		newCountCmd(),
		newEntriesCmd(),
		newExportCmd(),
		newHistoryCmd(),
		newRevertCmd(),
		newEditCmd(),
		newImportImageCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError reports bad input: arguments, coordinates, unconfirmed prompts.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError reports a failure of storage, clipboard or another dependency.
func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps an error to its exit code. Errors raised by cobra itself
// (unknown flags, wrong argument counts) are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
