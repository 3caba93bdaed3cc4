package dispatchers

import (
	"maps"
	"slices"

	"github.com/footprint-tools/brig/internal/usage"
)

// ContextBuilder accumulates matched nodes and arguments during one parse
// pass. Crossing a redirect starts a child builder.
type ContextBuilder[S comparable] struct {
	dispatcher *Dispatcher[S]
	source     S
	root       *Node[S]
	arguments  map[string]ParsedArgument
	nodes      []ParsedNode[S]
	command    Command[S]
	child      *ContextBuilder[S]
	rng        StringRange
	modifier   RedirectModifier[S]
	forks      bool
}

func NewContextBuilder[S comparable](d *Dispatcher[S], source S, root *Node[S], start int) *ContextBuilder[S] {
	return &ContextBuilder[S]{
		dispatcher: d,
		source:     source,
		root:       root,
		arguments:  make(map[string]ParsedArgument),
		rng:        At(start),
	}
}

func (b *ContextBuilder[S]) Source() S                  { return b.source }
func (b *ContextBuilder[S]) RootNode() *Node[S]         { return b.root }
func (b *ContextBuilder[S]) Nodes() []ParsedNode[S]     { return b.nodes }
func (b *ContextBuilder[S]) Command() Command[S]        { return b.command }
func (b *ContextBuilder[S]) Child() *ContextBuilder[S]  { return b.child }
func (b *ContextBuilder[S]) Range() StringRange         { return b.rng }
func (b *ContextBuilder[S]) Dispatcher() *Dispatcher[S] { return b.dispatcher }
func (b *ContextBuilder[S]) IsForked() bool             { return b.forks }

func (b *ContextBuilder[S]) Arguments() map[string]ParsedArgument {
	return b.arguments
}

func (b *ContextBuilder[S]) WithSource(source S) *ContextBuilder[S] {
	b.source = source
	return b
}

func (b *ContextBuilder[S]) WithArgument(name string, arg ParsedArgument) *ContextBuilder[S] {
	b.arguments[name] = arg
	return b
}

func (b *ContextBuilder[S]) WithCommand(command Command[S]) *ContextBuilder[S] {
	b.command = command
	return b
}

// WithNode records a match, widens the range and adopts the node's
// redirect modifier and fork flag.
func (b *ContextBuilder[S]) WithNode(node *Node[S], r StringRange) *ContextBuilder[S] {
	b.nodes = append(b.nodes, ParsedNode[S]{Node: node, Range: r})
	b.rng = Encompassing(b.rng, r)
	b.modifier = node.modifier
	b.forks = node.forks
	return b
}

func (b *ContextBuilder[S]) WithChild(child *ContextBuilder[S]) *ContextBuilder[S] {
	b.child = child
	return b
}

// Copy returns an independent builder; the child, if any, is shared.
func (b *ContextBuilder[S]) Copy() *ContextBuilder[S] {
	cp := *b
	cp.arguments = maps.Clone(b.arguments)
	cp.nodes = slices.Clone(b.nodes)
	return &cp
}

func (b *ContextBuilder[S]) LastChild() *ContextBuilder[S] {
	result := b
	for result.child != nil {
		result = result.child
	}
	return result
}

// frontier is the deepest node of this segment, or the segment's root when
// nothing matched in it yet.
func (b *ContextBuilder[S]) frontier() *Node[S] {
	if len(b.nodes) == 0 {
		return b.root
	}
	return b.nodes[len(b.nodes)-1].Node
}

// Build freezes the builder chain into contexts for input.
func (b *ContextBuilder[S]) Build(input string) *CommandContext[S] {
	ctx := &CommandContext[S]{
		source:    b.source,
		input:     input,
		arguments: b.arguments,
		command:   b.command,
		root:      b.root,
		nodes:     b.nodes,
		rng:       b.rng,
		modifier:  b.modifier,
		forks:     b.forks,
	}
	if b.child != nil {
		ctx.child = b.child.Build(input)
	}
	return ctx
}

// SuggestionContext names the node whose children complete the token that
// starts at StartPos.
type SuggestionContext[S comparable] struct {
	Parent   *Node[S]
	StartPos int
}

// FindSuggestionContext locates the frontier for a cursor position.
func (b *ContextBuilder[S]) FindSuggestionContext(cursor int) (SuggestionContext[S], error) {
	if b.rng.Start > cursor {
		return SuggestionContext[S]{}, usage.Structure("can't find node before cursor %d", cursor)
	}

	if b.rng.End < cursor {
		if b.child != nil {
			return b.child.FindSuggestionContext(cursor)
		}
		if len(b.nodes) > 0 {
			last := b.nodes[len(b.nodes)-1]
			return SuggestionContext[S]{Parent: last.Node, StartPos: last.Range.End + 1}, nil
		}
		return SuggestionContext[S]{Parent: b.root, StartPos: b.rng.Start}, nil
	}

	prev := b.root
	for _, node := range b.nodes {
		if node.Range.Start <= cursor && cursor <= node.Range.End {
			return SuggestionContext[S]{Parent: prev, StartPos: node.Range.Start}, nil
		}
		prev = node.Node
	}
	if prev == nil {
		return SuggestionContext[S]{}, usage.Structure("can't find node before cursor %d", cursor)
	}
	return SuggestionContext[S]{Parent: prev, StartPos: b.rng.Start}, nil
}
