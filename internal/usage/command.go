package usage

import (
	"errors"
	"fmt"
)

// CommandFailure wraps an error returned by a bound command.
// Errors that already are *Error are returned unchanged.
func CommandFailure(cause error) *Error {
	var ue *Error
	if errors.As(cause, &ue) {
		return ue
	}
	return &Error{
		Kind:    ErrCommandFailure,
		Message: fmt.Sprintf("Command failed: %v", cause),
		Cursor:  NoCursor,
		Cause:   cause,
	}
}

// ForkFailure is returned when every path of a forked execution failed.
func ForkFailure(failures []error) *Error {
	return &Error{
		Kind:    ErrCommandFailure,
		Message: fmt.Sprintf("All %d forked executions failed", len(failures)),
		Cursor:  NoCursor,
		Cause:   errors.Join(failures...),
	}
}
