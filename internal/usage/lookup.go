package usage

import "fmt"

// NoSuchArgument is returned when a context is asked for an argument the
// matched path never parsed.
func NoSuchArgument(name string) *Error {
	return &Error{
		Kind:    ErrNoSuchArgument,
		Message: fmt.Sprintf("No such argument '%s' exists on this command", name),
		Cursor:  NoCursor,
	}
}

// ArgumentType is returned when a parsed argument is not of the requested type.
func ArgumentType(name string, actual, expected any) *Error {
	return &Error{
		Kind:    ErrArgumentType,
		Message: fmt.Sprintf("Argument '%s' is defined as %T, not %T", name, actual, expected),
		Cursor:  NoCursor,
	}
}

// Structure is returned for invalid tree construction.
func Structure(format string, args ...any) *Error {
	return &Error{
		Kind:    ErrStructure,
		Message: fmt.Sprintf(format, args...),
		Cursor:  NoCursor,
	}
}
