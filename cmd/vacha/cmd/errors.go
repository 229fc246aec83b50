package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	exitError   = 1
	exitUsage   = 2
	exitNoMatch = 1
)

// exitStatus carries a specific exit code out of a command. An empty msg
// exits silently.
type exitStatus struct {
	code int
	msg  string
}

func (e exitStatus) Error() string {
	return e.msg
}

// usageError marks bad invocations: wrong argument count, unknown flags,
// malformed flag values.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit status:
// 2 for usage errors, the carried code for exitStatus, 1 otherwise.
func ExitCode(err error) int {
	var es exitStatus
	if errors.As(err, &es) {
		return es.code
	}
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}

// argsBetween is cobra.RangeArgs reporting a usage error.
func argsBetween(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			switch {
			case hi < 0:
				return usageErrorf("%s: need at least %d argument(s), got %d", cmd.Name(), lo, len(args))
			case lo == hi:
				return usageErrorf("%s: need %d argument(s), got %d", cmd.Name(), lo, len(args))
			default:
				return usageErrorf("%s: need %d to %d arguments, got %d", cmd.Name(), lo, hi, len(args))
			}
		}
		return nil
	}
}
