package style

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/footprint-tools/brig/internal/usage"
)

// caretWidth bounds how much input is echoed around the error position.
const caretWidth = 60

// RenderError formats err for a terminal. Errors that point into the
// input show the input with a caret under the failing position:
//
//	Unknown command
//	  sya hello
//	  ^
//	Did you mean: say?
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	var ue *usage.Error
	if !errors.As(err, &ue) {
		return Error(err.Error())
	}

	var b strings.Builder
	b.WriteString(Error(ue.Message))

	if ue.HasPosition() {
		input, cursor := window(ue.Input, min(ue.Cursor, len(ue.Input)))
		b.WriteString("\n  ")
		b.WriteString(input[:cursor])
		b.WriteString(Muted(input[cursor:]))
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat(" ", runewidth.StringWidth(input[:cursor])))
		b.WriteString(Error("^"))
	}

	if len(ue.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(Muted("Did you mean: " + strings.Join(ue.Suggestions, ", ") + "?"))
	}

	if ue.Cause != nil && ue.Kind == usage.ErrCommandFailure {
		for _, line := range strings.Split(ue.Cause.Error(), "\n") {
			b.WriteString("\n  ")
			b.WriteString(Muted(line))
		}
	}

	return b.String()
}

// window trims long input so the cursor stays visible, returning the
// visible slice and the cursor's offset within it.
func window(input string, cursor int) (string, int) {
	if len(input) <= caretWidth {
		return input, cursor
	}
	start := max(0, cursor-caretWidth/2)
	end := min(len(input), start+caretWidth)
	start = max(0, end-caretWidth)
	return input[start:end], cursor - start
}

// RenderUsage colors one usage line: literals, <arguments> and the
// grouping punctuation each get their own style.
func RenderUsage(line string) string {
	if !Enabled() {
		return line
	}

	var b strings.Builder
	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == '<':
			end := strings.IndexByte(line[i:], '>')
			if end < 0 {
				b.WriteString(Argument(line[i:]))
				return b.String()
			}
			b.WriteString(Argument(line[i : i+end+1]))
			i += end + 1
		case strings.IndexByte("[]()|. ", c) >= 0 || c == '-' && i+1 < len(line) && line[i+1] == '>':
			j := i + 1
			for j < len(line) && strings.IndexByte("[]()|.-> ", line[j]) >= 0 && line[j] != '<' {
				j++
			}
			b.WriteString(Muted(line[i:j]))
			i = j
		default:
			j := i + 1
			for j < len(line) && strings.IndexByte("[]()|<> ", line[j]) < 0 {
				j++
			}
			b.WriteString(Literal(line[i:j]))
			i = j
		}
	}
	return b.String()
}
