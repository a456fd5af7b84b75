package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries a specific exit code. A nil err means the failure has
// already been reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

// errReported signals an HTTP failure whose diagnostic was already printed.
var errReported = &exitError{code: exitFailure}

// actionArgs accepts exactly one known action.
func actionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return usageError(fmt.Errorf("%w: choose an action from %v", err, types.ActionNames()))
	}
	if _, err := types.ParseAction(args[0]); err != nil {
		return usageError(err)
	}
	return nil
}

// usageArgs wraps a cobra argument validator so violations exit with code 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// exitCode reports err on stderr, when not already reported, and maps it to
// a process exit code.
func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	code := exitFailure
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
		if ee.err == nil {
			return code
		}
	}

	fmt.Fprintln(stderr, "Error:", err)
	if code == exitUsage && cmd != nil {
		fmt.Fprintf(stderr, "\n%s", cmd.UsageString())
	}
	return code
}
