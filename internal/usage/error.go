package usage

import (
	"errors"
	"strconv"
	"strings"
)

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrSyntax
	ErrExpectedSeparator
	ErrUnknownCommand
	ErrUnknownArgument
	ErrTrailingInput
	ErrMissingArgument
	ErrNoSuchArgument
	ErrArgumentType
	ErrCommandFailure
	ErrStructure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrExpectedSeparator:
		return "expected_separator"
	case ErrUnknownCommand:
		return "unknown_command"
	case ErrUnknownArgument:
		return "unknown_argument"
	case ErrTrailingInput:
		return "trailing_input"
	case ErrMissingArgument:
		return "missing_argument"
	case ErrNoSuchArgument:
		return "no_such_argument"
	case ErrArgumentType:
		return "argument_type"
	case ErrCommandFailure:
		return "command_failure"
	case ErrStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Exit codes:
//
//	Exit 1: Dispatch and programmer errors
//	  - Unknown errors
//	  - Unknown command
//	  - Argument lookup (no such argument, wrong type)
//	  - Command failure
//	  - Tree structure errors
//
//	Exit 2: User input errors
//	  - Syntax errors
//	  - Expected separator
//	  - Unknown argument
//	  - Trailing input
//	  - Missing argument
var exitCodes = map[ErrorKind]int{
	ErrUnknown:           1,
	ErrSyntax:            2,
	ErrExpectedSeparator: 2,
	ErrUnknownCommand:    1,
	ErrUnknownArgument:   2,
	ErrTrailingInput:     2,
	ErrMissingArgument:   2,
	ErrNoSuchArgument:    1,
	ErrArgumentType:      1,
	ErrCommandFailure:    1,
	ErrStructure:         1,
}

// contextAmount is how many characters before the cursor are echoed back.
const contextAmount = 10

// NoCursor marks an error that is not tied to a position in the input.
const NoCursor = -1

// Error represents a command error with semantic type information.
// Errors produced while reading input carry the input and the cursor
// at which reading failed.
type Error struct {
	Kind        ErrorKind
	Message     string
	Input       string
	Cursor      int
	Cause       error
	Suggestions []string
	ExitCode    int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	ctx := e.Context()
	if ctx == "" {
		return e.Message
	}
	return e.Message + " at position " + strconv.Itoa(e.Cursor) + ": " + ctx
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Context renders the tail of the consumed input followed by a marker,
// e.g. "...foo 5 bar<--[HERE]". It is empty when the error has no position.
func (e *Error) Context() string {
	if e.Input == "" || e.Cursor < 0 {
		return ""
	}
	cursor := min(e.Cursor, len(e.Input))

	var b strings.Builder
	if cursor > contextAmount {
		b.WriteString("...")
	}
	b.WriteString(e.Input[max(0, cursor-contextAmount):cursor])
	b.WriteString("<--[HERE]")
	return b.String()
}

// HasPosition reports whether the error points at a cursor in the input.
func (e *Error) HasPosition() bool {
	return e.Input != "" && e.Cursor >= 0
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// WithSuggestions attaches "did you mean" candidates.
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

// IsSyntax reports whether err was raised while reading input.
func IsSyntax(err error) bool {
	switch KindOf(err) {
	case ErrSyntax, ErrExpectedSeparator:
		return true
	}
	return false
}

func at(kind ErrorKind, input string, cursor int, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Input:   input,
		Cursor:  cursor,
	}
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
