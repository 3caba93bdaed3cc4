package dispatchers

import "github.com/footprint-tools/brig/internal/usage"

// Builder assembles a literal or argument node fluently. Construction errors
// are remembered and reported by Build, so chains never need to stop.
type Builder[S comparable] struct {
	kind        NodeKind
	name        string
	argType     ArgumentType
	suggestions SuggestionProvider[S]

	arguments   *Node[S] // container for children
	command     Command[S]
	requirement Requirement[S]
	target      *Node[S]
	modifier    RedirectModifier[S]
	forks       bool

	err error
}

// Literal starts a node that matches name exactly.
func Literal[S comparable](name string) *Builder[S] {
	b := &Builder[S]{kind: KindLiteral, name: name, arguments: NewRoot[S]()}
	if name == "" {
		b.err = usage.Structure("literal name must not be empty")
	}
	return b
}

// Argument starts a node that parses a value of typ and stores it under name.
func Argument[S comparable](name string, typ ArgumentType) *Builder[S] {
	b := &Builder[S]{kind: KindArgument, name: name, argType: typ, arguments: NewRoot[S]()}
	if typ == nil {
		b.err = usage.Structure("argument %q has no type", name)
	}
	return b
}

// Then builds child and adds it below this node.
func (b *Builder[S]) Then(child *Builder[S]) *Builder[S] {
	if b.err != nil {
		return b
	}
	node, err := child.Build()
	if err != nil {
		b.err = err
		return b
	}
	return b.ThenNode(node)
}

// ThenNode adds an already built node below this node.
func (b *Builder[S]) ThenNode(node *Node[S]) *Builder[S] {
	if b.err != nil {
		return b
	}
	if b.target != nil {
		b.err = usage.Structure("cannot add children to redirected node %q", b.name)
		return b
	}
	b.err = b.arguments.AddChild(node)
	return b
}

func (b *Builder[S]) Executes(command Command[S]) *Builder[S] {
	b.command = command
	return b
}

func (b *Builder[S]) Requires(requirement Requirement[S]) *Builder[S] {
	b.requirement = requirement
	return b
}

// Redirect continues parsing at target's children after this node.
func (b *Builder[S]) Redirect(target *Node[S]) *Builder[S] {
	return b.Forward(target, nil, false)
}

// RedirectModified redirects and replaces the source with the modifier's
// results. Every result runs the rest of the input; failures abort.
func (b *Builder[S]) RedirectModified(target *Node[S], modifier RedirectModifier[S]) *Builder[S] {
	return b.Forward(target, modifier, false)
}

// Fork redirects and fans out to every source the modifier returns. Paths
// run independently and one failing path does not stop the others.
func (b *Builder[S]) Fork(target *Node[S], modifier RedirectModifier[S]) *Builder[S] {
	return b.Forward(target, modifier, true)
}

func (b *Builder[S]) Forward(target *Node[S], modifier RedirectModifier[S], fork bool) *Builder[S] {
	if b.err != nil {
		return b
	}
	if b.arguments.HasChildren() {
		b.err = usage.Structure("cannot forward node %q with children", b.name)
		return b
	}
	b.target = target
	b.modifier = modifier
	b.forks = fork
	return b
}

// Suggests installs a custom completion provider on an argument node.
func (b *Builder[S]) Suggests(provider SuggestionProvider[S]) *Builder[S] {
	if b.kind != KindArgument {
		b.err = usage.Structure("literal %q cannot take custom suggestions", b.name)
		return b
	}
	b.suggestions = provider
	return b
}

// Arguments returns the children added so far.
func (b *Builder[S]) Arguments() []*Node[S] {
	return b.arguments.Children()
}

func (b *Builder[S]) Build() (*Node[S], error) {
	if b.err != nil {
		return nil, b.err
	}
	node := newNode[S](b.kind, b.name)
	node.argType = b.argType
	node.suggestions = b.suggestions
	node.command = b.command
	node.requirement = b.requirement
	node.redirect = b.target
	node.modifier = b.modifier
	node.forks = b.forks

	for _, child := range b.arguments.Children() {
		if err := node.AddChild(child); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// CreateBuilder returns a builder seeded with this node's requirement,
// command and redirect, but none of its children.
func (n *Node[S]) CreateBuilder() *Builder[S] {
	var b *Builder[S]
	switch n.kind {
	case KindLiteral:
		b = Literal[S](n.name)
	case KindArgument:
		b = Argument[S](n.name, n.argType)
		b.suggestions = n.suggestions
	default:
		return &Builder[S]{
			kind:      KindRoot,
			arguments: NewRoot[S](),
			err:       usage.Structure("cannot create a builder from a root node"),
		}
	}
	b.Requires(n.requirement)
	b.Forward(n.redirect, n.modifier, n.forks)
	if n.command != nil {
		b.Executes(n.command)
	}
	return b
}
