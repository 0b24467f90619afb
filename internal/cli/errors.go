package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// usageError marks mistakes in how the command was invoked (exit code 2).
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type notFoundError struct {
	id int64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("todo not found: #%d", e.id)
}

// usageArgs turns cobra's positional-arg errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{msg: fmt.Sprintf("%s\nusage: %s", err, cmd.UseLine())}
		}
		return nil
	}
}

// ExitCode maps an error from Execute to a process exit code:
// 0 ok, 1 operation error, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}
