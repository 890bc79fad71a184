package cli

import (
	"context"
	"errors"
	"fmt"

	"acetics-cli/internal/tui"

	"github.com/spf13/cobra"
)

type invalidFlagError struct {
	flag  string
	value string
	err   error
}

func (e invalidFlagError) Error() string {
	return fmt.Sprintf("--%s: %v", e.flag, e.err)
}

func (e invalidFlagError) Unwrap() error { return e.err }

func errInvalidFlag(flag, value string, err error) error {
	return invalidFlagError{flag: flag, value: value, err: err}
}

// reportedError marks an error that was already printed to stderr.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err: err}
}

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

// ExitCode maps an error returned by the root command to a process exit code.
// A declined or aborted form is a success.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, tui.ErrFormAborted):
		return ExitOK
	case errors.Is(err, tui.ErrFormInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitError
	}
}

// Execute runs cmd and returns the exit code. Errors the commands did not
// print themselves (flag parsing, unknown commands) are printed here.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	var reported reportedError
	if code == ExitError && !errors.As(err, &reported) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return code
}
