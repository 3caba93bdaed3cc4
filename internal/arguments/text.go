package arguments

import (
	"context"
	"slices"
	"strings"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/usage"
)

// BoolType parses true or false.
type BoolType struct{}

func Bool() BoolType { return BoolType{} }

func (BoolType) Parse(r *dispatchers.StringReader) (any, error) {
	return r.ReadBool()
}

func (BoolType) Examples() []string {
	return []string{"true", "false"}
}

func (BoolType) ListSuggestions(_ context.Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	for _, v := range []string{"true", "false"} {
		if strings.HasPrefix(v, b.RemainingLowerCase()) {
			b.Suggest(v)
		}
	}
	return b.Build(), nil
}

// StringKind selects how much input a StringType consumes.
type StringKind int

const (
	// SingleWord reads one unquoted word.
	SingleWord StringKind = iota
	// QuotablePhrase reads a word or a quoted phrase.
	QuotablePhrase
	// GreedyPhrase reads the rest of the input.
	GreedyPhrase
)

type StringType struct {
	Kind StringKind
}

func Word() StringType   { return StringType{Kind: SingleWord} }
func String() StringType { return StringType{Kind: QuotablePhrase} }
func Greedy() StringType { return StringType{Kind: GreedyPhrase} }

func (t StringType) Parse(r *dispatchers.StringReader) (any, error) {
	switch t.Kind {
	case GreedyPhrase:
		text := r.Remaining()
		r.SetCursor(r.TotalLength())
		return text, nil
	case SingleWord:
		return r.ReadUnquotedString(), nil
	default:
		return r.ReadString()
	}
}

func (t StringType) Examples() []string {
	switch t.Kind {
	case GreedyPhrase:
		return []string{"word", "words with spaces", `"and symbols"`}
	case SingleWord:
		return []string{"word", "words_with_underscores"}
	default:
		return []string{`"quoted phrase"`, "word", `""`}
	}
}

// EscapeIfRequired quotes input when it cannot be read back as a single
// unquoted word.
func EscapeIfRequired(input string) string {
	for i := 0; i < len(input); i++ {
		if !dispatchers.IsAllowedInUnquotedString(input[i]) {
			return escape(input)
		}
	}
	return input
}

func escape(input string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// ChoiceType accepts one word out of a fixed set.
type ChoiceType struct {
	values []string
}

func Choice(values ...string) ChoiceType {
	return ChoiceType{values: slices.Clone(values)}
}

func (t ChoiceType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	v := r.ReadUnquotedString()
	if !slices.Contains(t.values, v) {
		r.SetCursor(start)
		return nil, usage.InvalidChoice(r.String(), start, v)
	}
	return v, nil
}

func (t ChoiceType) Examples() []string {
	return slices.Clone(t.values)
}

func (t ChoiceType) ListSuggestions(_ context.Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	for _, v := range t.values {
		if strings.HasPrefix(strings.ToLower(v), b.RemainingLowerCase()) {
			b.Suggest(v)
		}
	}
	return b.Build(), nil
}
