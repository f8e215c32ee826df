package clicommand

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli"
)

// ExitUsage is the exit code for a command line that could not be turned
// into a document: bad flags, missing or invalid values.
const ExitUsage = 2

// ExitError is used to signal that the command should exit with the exit
// code in `code`. It also wraps an error, which can be used to provide more
// context.
type ExitError struct {
	code  int
	inner error
}

// NewExitError returns ExitError with the given code and wrapped error.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{code: code, inner: err}
}

// Code returns the exit code.
func (e *ExitError) Code() int {
	return e.code
}

// Error prints the message of the wrapped error. It ignores the exit code.
func (e *ExitError) Error() string {
	return e.inner.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.inner
}

// Is will return true if the target is an ExitError with the same code.
func (e *ExitError) Is(target error) bool {
	terr, ok := target.(*ExitError)
	return ok && e.code == terr.code
}

// usageError wraps err for a mistake on the command line of command c. The
// message points at the command's help.
func usageError(c *cli.Context, err error) error {
	return NewExitError(ExitUsage, fmt.Errorf("%w. See: `%s %s --help`", err, c.App.Name, c.Command.Name))
}

// PrintMessageAndReturnExitCode prints the error message to w, preceded by
// "bkyml: fatal: ", and returns the exit code for the given error: the code
// of an ExitError, 0 for nil errors and 1 for all other errors.
func PrintMessageAndReturnExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	fmt.Fprintf(w, "bkyml: fatal: %s\n", err)

	if eerr := new(ExitError); errors.As(err, &eerr) {
		return eerr.Code()
	}

	return 1
}
