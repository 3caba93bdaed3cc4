package dispatchers

import "context"

// ArgumentType parses a prefix of the remaining input into a typed value.
// On failure it returns an error positioned at the reader's cursor.
type ArgumentType interface {
	Parse(r *StringReader) (any, error)
}

// SuggestingType is implemented by argument types that can propose
// completions for a partially typed value. Implementations may block and
// should honour ctx.
type SuggestingType interface {
	ListSuggestions(ctx context.Context, b *SuggestionsBuilder) (*Suggestions, error)
}

// ExampleType is implemented by argument types that can list sample inputs.
// Examples drive ambiguity detection.
type ExampleType interface {
	Examples() []string
}

// ParsedArgument is the value an argument node produced and the input range
// it consumed.
type ParsedArgument struct {
	Range  StringRange
	Result any
}
