package dispatchers

import "github.com/footprint-tools/brig/internal/usage"

// ParsedNode is a matched node and the input range it consumed.
type ParsedNode[S comparable] struct {
	Node  *Node[S]
	Range StringRange
}

// CommandContext is the frozen result of parsing one segment of input. A
// segment ends where a redirect was followed; the rest of the input lives
// in Child.
type CommandContext[S comparable] struct {
	source    S
	input     string
	arguments map[string]ParsedArgument
	command   Command[S]
	root      *Node[S]
	nodes     []ParsedNode[S]
	rng       StringRange
	child     *CommandContext[S]
	modifier  RedirectModifier[S]
	forks     bool
}

func (c *CommandContext[S]) Source() S                             { return c.source }
func (c *CommandContext[S]) Input() string                         { return c.input }
func (c *CommandContext[S]) Command() Command[S]                   { return c.command }
func (c *CommandContext[S]) RootNode() *Node[S]                    { return c.root }
func (c *CommandContext[S]) Nodes() []ParsedNode[S]                { return c.nodes }
func (c *CommandContext[S]) Range() StringRange                    { return c.rng }
func (c *CommandContext[S]) Child() *CommandContext[S]             { return c.child }
func (c *CommandContext[S]) RedirectModifier() RedirectModifier[S] { return c.modifier }
func (c *CommandContext[S]) IsForked() bool                        { return c.forks }

func (c *CommandContext[S]) HasNodes() bool {
	return len(c.nodes) > 0
}

// LastChild follows the redirect chain to its final segment.
func (c *CommandContext[S]) LastChild() *CommandContext[S] {
	result := c
	for result.child != nil {
		result = result.child
	}
	return result
}

// CopyFor returns c itself when source equals the current source, and a
// shallow copy bound to source otherwise. Arguments and nodes are shared.
func (c *CommandContext[S]) CopyFor(source S) *CommandContext[S] {
	if c.source == source {
		return c
	}
	cp := *c
	cp.source = source
	return &cp
}

// RawArgument returns the parsed argument stored under name.
func (c *CommandContext[S]) RawArgument(name string) (ParsedArgument, bool) {
	arg, ok := c.arguments[name]
	return arg, ok
}

// ArgumentNames lists the names of all parsed arguments.
func (c *CommandContext[S]) ArgumentNames() []string {
	names := make([]string, 0, len(c.arguments))
	for name := range c.arguments {
		names = append(names, name)
	}
	return names
}

// GetArgument returns the value parsed for name as a T. It fails when the
// matched path has no such argument or the value has another type; both
// indicate a grammar/command mismatch rather than bad input.
func GetArgument[T any, S comparable](c *CommandContext[S], name string) (T, error) {
	var zero T
	arg, ok := c.arguments[name]
	if !ok {
		return zero, usage.NoSuchArgument(name)
	}
	v, ok := arg.Result.(T)
	if !ok {
		return zero, usage.ArgumentType(name, arg.Result, zero)
	}
	return v, nil
}
