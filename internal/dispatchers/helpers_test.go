package dispatchers

import (
	"context"
	"errors"
	"strings"
)

// stubType accepts any single word.
type stubType struct{}

func (stubType) Parse(r *StringReader) (any, error) {
	return r.ReadUnquotedString(), nil
}

// intType parses a 32-bit integer and suggests a fixed set of values.
type intType struct {
	examples []string
}

func (intType) Parse(r *StringReader) (any, error) {
	return r.ReadInt()
}

func (t intType) Examples() []string {
	return t.examples
}

func (intType) ListSuggestions(_ context.Context, b *SuggestionsBuilder) (*Suggestions, error) {
	for _, v := range []string{"1", "10", "2"} {
		if strings.HasPrefix(v, b.Remaining()) {
			b.Suggest(v)
		}
	}
	return b.Build(), nil
}

// failingType always fails without a position.
type failingType struct{}

func (failingType) Parse(*StringReader) (any, error) {
	return nil, errors.New("never parses")
}

func returns(v int) Command[string] {
	return func(*CommandContext[string]) (int, error) { return v, nil }
}

func mustRegister(d *Dispatcher[string], b *Builder[string]) *Node[string] {
	node, err := d.Register(b)
	if err != nil {
		panic(err)
	}
	return node
}
