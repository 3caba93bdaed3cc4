package dispatchers

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/footprint-tools/brig/internal/usage"
)

// Command is the action bound to a node. It returns a result code.
type Command[S comparable] func(ctx *CommandContext[S]) (int, error)

// Requirement decides whether a source may use a node. It is evaluated on
// every visit and never cached.
type Requirement[S comparable] func(source S) bool

// RedirectModifier maps the context that crossed a redirect to the sources
// the rest of the input runs for.
type RedirectModifier[S comparable] func(ctx *CommandContext[S]) ([]S, error)

// SuggestionProvider overrides an argument type's completions for one node.
type SuggestionProvider[S comparable] func(ctx context.Context, cc *CommandContext[S], b *SuggestionsBuilder) (*Suggestions, error)

// AmbiguityConsumer receives sibling pairs that accept each other's examples.
type AmbiguityConsumer[S comparable] func(parent, child, sibling *Node[S], inputs []string)

type NodeKind int

const (
	KindRoot NodeKind = iota
	KindLiteral
	KindArgument
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Node is one unit of grammar. Root, literal and argument nodes share all
// child management; only matching, naming and suggestions depend on Kind.
type Node[S comparable] struct {
	kind NodeKind
	name string

	argType     ArgumentType
	suggestions SuggestionProvider[S]

	command     Command[S]
	requirement Requirement[S]
	redirect    *Node[S]
	modifier    RedirectModifier[S]
	forks       bool

	children  []*Node[S]
	byName    map[string]*Node[S]
	literals  map[string]*Node[S]
	arguments []*Node[S] // kept in SortedKey order
}

// NewRoot returns an empty root node.
func NewRoot[S comparable]() *Node[S] {
	return newNode[S](KindRoot, "")
}

func newNode[S comparable](kind NodeKind, name string) *Node[S] {
	return &Node[S]{
		kind:     kind,
		name:     name,
		byName:   make(map[string]*Node[S]),
		literals: make(map[string]*Node[S]),
	}
}

func (n *Node[S]) Kind() NodeKind                        { return n.kind }
func (n *Node[S]) Command() Command[S]                   { return n.command }
func (n *Node[S]) Requirement() Requirement[S]           { return n.requirement }
func (n *Node[S]) Redirect() *Node[S]                    { return n.redirect }
func (n *Node[S]) RedirectModifier() RedirectModifier[S] { return n.modifier }
func (n *Node[S]) IsFork() bool                          { return n.forks }
func (n *Node[S]) Type() ArgumentType                    { return n.argType }

// Children returns the children in insertion order.
func (n *Node[S]) Children() []*Node[S] {
	return n.children
}

func (n *Node[S]) HasChildren() bool {
	return len(n.children) > 0
}

// Child returns the child with the exact name, or nil.
func (n *Node[S]) Child(name string) *Node[S] {
	return n.byName[name]
}

// Arguments returns the argument children in SortedKey order.
func (n *Node[S]) Arguments() []*Node[S] {
	return n.arguments
}

// Literals returns the literal children in insertion order.
func (n *Node[S]) Literals() []*Node[S] {
	var out []*Node[S]
	for _, c := range n.children {
		if c.kind == KindLiteral {
			out = append(out, c)
		}
	}
	return out
}

// CanUse evaluates the access requirement; nodes without one are open to all.
func (n *Node[S]) CanUse(source S) bool {
	if n.requirement == nil {
		return true
	}
	return n.requirement(source)
}

// AddChild inserts node, or merges it into an existing child of the same
// name: the existing child takes node's command when it is non-nil and
// absorbs node's children recursively.
func (n *Node[S]) AddChild(node *Node[S]) error {
	if node.kind == KindRoot {
		return usage.Structure("cannot add a root node as a child to any other node")
	}

	existing, ok := n.byName[node.name]
	if !ok {
		n.children = append(n.children, node)
		n.byName[node.name] = node
		switch node.kind {
		case KindLiteral:
			n.literals[node.name] = node
		case KindArgument:
			n.arguments = append(n.arguments, node)
			slices.SortStableFunc(n.arguments, func(a, b *Node[S]) int {
				return strings.Compare(a.SortedKey(), b.SortedKey())
			})
		}
		return nil
	}

	if existing == node {
		return nil
	}
	if node.command != nil {
		existing.command = node.command
	}
	for _, grandchild := range node.children {
		if err := existing.AddChild(grandchild); err != nil {
			return err
		}
	}
	return nil
}

// RelevantNodes returns the children worth trying for the next token: the
// literal that matches it exactly, otherwise every argument child.
func (n *Node[S]) RelevantNodes(r *StringReader) []*Node[S] {
	if len(n.literals) > 0 {
		cursor := r.Cursor()
		for r.CanRead() && r.Peek() != ArgumentSeparator {
			r.Skip()
		}
		text := r.String()[cursor:r.Cursor()]
		r.SetCursor(cursor)
		if literal, ok := n.literals[text]; ok {
			return []*Node[S]{literal}
		}
	}
	return n.arguments
}

// Name returns the literal text, the argument name, or "" for the root.
func (n *Node[S]) Name() string {
	return n.name
}

// UsageText is the fragment shown in usage lines.
func (n *Node[S]) UsageText() string {
	switch n.kind {
	case KindLiteral:
		return n.name
	case KindArgument:
		return "<" + n.name + ">"
	default:
		return ""
	}
}

// SortedKey orders siblings deterministically.
func (n *Node[S]) SortedKey() string {
	if n.kind == KindArgument {
		return "<" + n.name + ">"
	}
	return n.name
}

func (n *Node[S]) String() string {
	switch n.kind {
	case KindLiteral:
		return "<literal " + n.name + ">"
	case KindArgument:
		return "<argument " + n.name + ">"
	default:
		return "<root>"
	}
}

// Examples lists sample inputs accepted by this node alone.
func (n *Node[S]) Examples() []string {
	switch n.kind {
	case KindLiteral:
		return []string{n.name}
	case KindArgument:
		if ex, ok := n.argType.(ExampleType); ok {
			return ex.Examples()
		}
	}
	return nil
}

// IsValidInput reports whether the token would be accepted by this node's
// own matching rule.
func (n *Node[S]) IsValidInput(input string) bool {
	switch n.kind {
	case KindLiteral:
		return n.matchLiteral(NewStringReader(input)) > -1
	case KindArgument:
		r := NewStringReader(input)
		if _, err := n.argType.Parse(r); err != nil {
			return false
		}
		return !r.CanRead() || r.Peek() == ArgumentSeparator
	default:
		return false
	}
}

// parse consumes this node's token and records it in b.
func (n *Node[S]) parse(r *StringReader, b *ContextBuilder[S]) error {
	start := r.Cursor()
	switch n.kind {
	case KindLiteral:
		end := n.matchLiteral(r)
		if end < 0 {
			return usage.LiteralIncorrect(r.String(), r.Cursor(), n.name)
		}
		b.WithNode(n, Between(start, end))
	case KindArgument:
		result, err := n.argType.Parse(r)
		if err != nil {
			var ue *usage.Error
			if errors.As(err, &ue) {
				return err
			}
			return r.syntaxError(err)
		}
		parsed := ParsedArgument{Range: Between(start, r.Cursor()), Result: result}
		b.WithArgument(n.name, parsed)
		b.WithNode(n, parsed.Range)
	}
	return nil
}

// matchLiteral returns the end of the literal when the reader holds it as a
// whole token, or -1 leaving the cursor untouched.
func (n *Node[S]) matchLiteral(r *StringReader) int {
	start := r.Cursor()
	if !r.CanReadN(len(n.name)) {
		return -1
	}
	end := start + len(n.name)
	if r.String()[start:end] != n.name {
		return -1
	}
	r.SetCursor(end)
	if !r.CanRead() || r.Peek() == ArgumentSeparator {
		return end
	}
	r.SetCursor(start)
	return -1
}

// listSuggestions proposes completions for the token starting at b.Start().
func (n *Node[S]) listSuggestions(ctx context.Context, cc *CommandContext[S], b *SuggestionsBuilder) (*Suggestions, error) {
	switch n.kind {
	case KindLiteral:
		if strings.HasPrefix(strings.ToLower(n.name), b.RemainingLowerCase()) {
			return b.Suggest(n.name).Build(), nil
		}
		return EmptySuggestions(), nil
	case KindArgument:
		if n.suggestions != nil {
			return n.suggestions(ctx, cc, b)
		}
		if st, ok := n.argType.(SuggestingType); ok {
			return st.ListSuggestions(ctx, b)
		}
	}
	return EmptySuggestions(), nil
}

// FindAmbiguities reports, for every pair of siblings in the subtree, the
// examples of one that the other also accepts. Matching precedence is not
// affected; this is a diagnostic for grammar authors.
func (n *Node[S]) FindAmbiguities(consumer AmbiguityConsumer[S]) {
	for _, child := range n.children {
		for _, sibling := range n.children {
			if child == sibling {
				continue
			}
			var matches []string
			for _, input := range child.Examples() {
				if sibling.IsValidInput(input) && !slices.Contains(matches, input) {
					matches = append(matches, input)
				}
			}
			if len(matches) > 0 {
				consumer(n, child, sibling, matches)
			}
		}
		child.FindAmbiguities(consumer)
	}
}
