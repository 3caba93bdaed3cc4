package usage

import "fmt"

// UnknownCommand is returned when no node matched at the cursor.
func UnknownCommand(input string, cursor int) *Error {
	return at(ErrUnknownCommand, input, cursor, "Unknown command")
}

// UnknownArgument is returned when a command matched but none of the
// nodes that may follow it accepted the next token.
func UnknownArgument(input string, cursor int) *Error {
	return at(ErrUnknownArgument, input, cursor, "Incorrect argument for command")
}

// TrailingInput is returned when the grammar ended but input remains.
func TrailingInput(input string, cursor int) *Error {
	return at(ErrTrailingInput, input, cursor, "Unexpected trailing input")
}

// ExpectedSeparator is returned when a node consumed a valid prefix of a
// token but the token continues.
func ExpectedSeparator(input string, cursor int) *Error {
	return at(ErrExpectedSeparator, input, cursor, "Expected whitespace to end one argument, but found trailing data")
}

// MissingArgument is returned when the input ends at a node that needs
// more arguments before it can run.
func MissingArgument(input string, cursor int, expected string) *Error {
	msg := "Incomplete command"
	if expected != "" {
		msg = fmt.Sprintf("Incomplete command, expected %s", expected)
	}
	return at(ErrMissingArgument, input, cursor, msg)
}

// ParseFailure wraps an argument parser error that did not carry a position.
func ParseFailure(input string, cursor int, cause error) *Error {
	e := at(ErrSyntax, input, cursor, fmt.Sprintf("Could not parse command: %v", cause))
	e.Cause = cause
	return e
}
