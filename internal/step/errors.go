package step

import "fmt"

// ErrorKind classifies why input could not be turned into a document.
type ErrorKind int

const (
	// MissingInput means a required value or group of values was absent or
	// empty.
	MissingInput ErrorKind = iota + 1

	// InvalidValue means a value failed type, range or format validation.
	InvalidValue

	// ValidationError means a constraint between two or more values was
	// violated.
	ValidationError

	// InvalidRetryValue means the retry mode was outside the closed set of
	// supported modes.
	InvalidRetryValue
)

var kindNames = map[ErrorKind]string{
	MissingInput:      "missing input",
	InvalidValue:      "invalid value",
	ValidationError:   "validation error",
	InvalidRetryValue: "invalid retry value",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for use with errors.Is.
var (
	ErrMissingInput      = &Error{Kind: MissingInput}
	ErrInvalidValue      = &Error{Kind: InvalidValue}
	ErrValidation        = &Error{Kind: ValidationError}
	ErrInvalidRetryValue = &Error{Kind: InvalidRetryValue}
)

// Error is returned by the validators and builders in this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

func newError(kind ErrorKind, format string, v ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

// Error returns the message, or the kind name if there is no message.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind. This lets callers
// write errors.Is(err, step.ErrValidation) regardless of the message.
func (e *Error) Is(target error) bool {
	terr, ok := target.(*Error)
	return ok && e.Kind == terr.Kind
}
