package usage

import "fmt"

// Reader errors. Each is raised at the cursor where reading stopped.

func ExpectedInt(input string, cursor int) *Error {
	return at(ErrSyntax, input, cursor, "Expected integer")
}

func InvalidInt(input string, cursor int, value string) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Invalid integer '%s'", value))
}

func ExpectedFloat(input string, cursor int) *Error {
	return at(ErrSyntax, input, cursor, "Expected float")
}

func InvalidFloat(input string, cursor int, value string) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Invalid float '%s'", value))
}

func ExpectedBool(input string, cursor int) *Error {
	return at(ErrSyntax, input, cursor, "Expected bool")
}

func InvalidBool(input string, cursor int, value string) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Invalid bool, expected true or false but found '%s'", value))
}

func ExpectedStartOfQuote(input string, cursor int) *Error {
	return at(ErrSyntax, input, cursor, "Expected quote to start a string")
}

func ExpectedEndOfQuote(input string, cursor int) *Error {
	return at(ErrSyntax, input, cursor, "Unclosed quoted string")
}

func InvalidEscape(input string, cursor int, ch byte) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Invalid escape sequence '%c' in quoted string", ch))
}

func ExpectedSymbol(input string, cursor int, symbol byte) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Expected '%c'", symbol))
}

func IntegerTooLow(input string, cursor int, found, minimum int64) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Integer must not be less than %d, found %d", minimum, found))
}

func IntegerTooHigh(input string, cursor int, found, maximum int64) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Integer must not be more than %d, found %d", maximum, found))
}

func FloatTooLow(input string, cursor int, found, minimum float64) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Float must not be less than %g, found %g", minimum, found))
}

func FloatTooHigh(input string, cursor int, found, maximum float64) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Float must not be more than %g, found %g", maximum, found))
}

func InvalidChoice(input string, cursor int, value string) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Unknown value '%s'", value))
}

// LiteralIncorrect is raised when the next token is not the expected literal.
func LiteralIncorrect(input string, cursor int, literal string) *Error {
	return at(ErrSyntax, input, cursor, fmt.Sprintf("Expected literal %s", literal))
}
