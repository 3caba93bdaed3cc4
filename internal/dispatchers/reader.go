package dispatchers

import (
	"strconv"
	"strings"

	"github.com/footprint-tools/brig/internal/usage"
)

const (
	ArgumentSeparator = ' '

	syntaxEscape      = '\\'
	syntaxDoubleQuote = '"'
	syntaxSingleQuote = '\''
)

// StringReader is a cursor over a command line. Copying the struct takes a
// snapshot of the cursor.
type StringReader struct {
	input  string
	cursor int
}

func NewStringReader(input string) *StringReader {
	return &StringReader{input: input}
}

func (r *StringReader) String() string {
	return r.input
}

func (r *StringReader) Cursor() int {
	return r.cursor
}

func (r *StringReader) SetCursor(cursor int) {
	r.cursor = cursor
}

func (r *StringReader) TotalLength() int {
	return len(r.input)
}

func (r *StringReader) RemainingLength() int {
	return len(r.input) - r.cursor
}

// Read returns the consumed part of the input.
func (r *StringReader) Read() string {
	return r.input[:r.cursor]
}

func (r *StringReader) Remaining() string {
	return r.input[r.cursor:]
}

func (r *StringReader) CanReadN(length int) bool {
	return r.cursor+length <= len(r.input)
}

func (r *StringReader) CanRead() bool {
	return r.CanReadN(1)
}

func (r *StringReader) Peek() byte {
	return r.input[r.cursor]
}

func (r *StringReader) PeekAt(offset int) byte {
	return r.input[r.cursor+offset]
}

func (r *StringReader) Next() byte {
	c := r.input[r.cursor]
	r.cursor++
	return c
}

func (r *StringReader) Skip() {
	r.cursor++
}

func (r *StringReader) SkipWhitespace() {
	for r.CanRead() && isWhitespace(r.Peek()) {
		r.Skip()
	}
}

// ReadInt reads a 32-bit signed integer.
func (r *StringReader) ReadInt() (int, error) {
	v, err := r.readInteger(32)
	return int(v), err
}

// ReadInt64 reads a 64-bit signed integer.
func (r *StringReader) ReadInt64() (int64, error) {
	return r.readInteger(64)
}

func (r *StringReader) readInteger(bits int) (int64, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, usage.ExpectedInt(r.input, r.cursor)
	}
	v, err := strconv.ParseInt(number, 10, bits)
	if err != nil {
		r.cursor = start
		return 0, usage.InvalidInt(r.input, r.cursor, number)
	}
	return v, nil
}

func (r *StringReader) ReadFloat() (float64, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, usage.ExpectedFloat(r.input, r.cursor)
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		r.cursor = start
		return 0, usage.InvalidFloat(r.input, r.cursor, number)
	}
	return v, nil
}

// ReadUnquotedString reads a run of [0-9A-Za-z_\-.+] characters.
func (r *StringReader) ReadUnquotedString() string {
	start := r.cursor
	for r.CanRead() && IsAllowedInUnquotedString(r.Peek()) {
		r.Skip()
	}
	return r.input[start:r.cursor]
}

func (r *StringReader) ReadQuotedString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if !isQuotedStringStart(next) {
		return "", usage.ExpectedStartOfQuote(r.input, r.cursor)
	}
	r.Skip()
	return r.ReadStringUntil(next)
}

// ReadStringUntil reads until the terminator, honouring backslash escapes of
// the terminator and of the escape character itself. The terminator is consumed.
func (r *StringReader) ReadStringUntil(terminator byte) (string, error) {
	var b strings.Builder
	escaped := false
	for r.CanRead() {
		c := r.Next()
		switch {
		case escaped:
			if c == terminator || c == syntaxEscape {
				b.WriteByte(c)
				escaped = false
			} else {
				r.cursor--
				return "", usage.InvalidEscape(r.input, r.cursor, c)
			}
		case c == syntaxEscape:
			escaped = true
		case c == terminator:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", usage.ExpectedEndOfQuote(r.input, r.cursor)
}

// ReadString reads a quoted string when the next character opens a quote and
// an unquoted string otherwise.
func (r *StringReader) ReadString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if isQuotedStringStart(next) {
		r.Skip()
		return r.ReadStringUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

func (r *StringReader) ReadBool() (bool, error) {
	start := r.cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	switch value {
	case "":
		return false, usage.ExpectedBool(r.input, r.cursor)
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	r.cursor = start
	return false, usage.InvalidBool(r.input, r.cursor, value)
}

// Expect consumes c or fails without moving the cursor.
func (r *StringReader) Expect(c byte) error {
	if !r.CanRead() || r.Peek() != c {
		return usage.ExpectedSymbol(r.input, r.cursor, c)
	}
	r.Skip()
	return nil
}

// syntaxError builds a position-carrying error at the current cursor for
// argument parsers that fail without one.
func (r *StringReader) syntaxError(cause error) *usage.Error {
	return usage.ParseFailure(r.input, r.cursor, cause)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAllowedNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-'
}

func isQuotedStringStart(c byte) bool {
	return c == syntaxDoubleQuote || c == syntaxSingleQuote
}

// IsAllowedInUnquotedString reports whether c may appear in an unquoted word.
func IsAllowedInUnquotedString(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' ||
		c == '.' || c == '+'
}
