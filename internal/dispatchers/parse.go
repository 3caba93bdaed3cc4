package dispatchers

import (
	"slices"
	"strings"

	"github.com/footprint-tools/brig/internal/usage"
)

// NodeError is a dead end met while parsing: the node that was tried and
// why it rejected the input.
type NodeError[S comparable] struct {
	Node *Node[S]
	Err  error
}

// ParseResults is the outcome of a parse. Nothing has been executed yet.
type ParseResults[S comparable] struct {
	Context    *ContextBuilder[S]
	Reader     *StringReader
	Exceptions []NodeError[S] // in attempt order
}

// ExceptionFor returns the error recorded for node, if any.
func (p *ParseResults[S]) ExceptionFor(node *Node[S]) error {
	for _, ne := range p.Exceptions {
		if ne.Node == node {
			return ne.Err
		}
	}
	return nil
}

// unconsumed reports whether any input, blanks included, is left to read.
func (p *ParseResults[S]) unconsumed() bool {
	return p.Reader.CanRead()
}

// Err returns the error Execute would fail with before running anything,
// or nil when the parse reached a command and consumed all input.
func (p *ParseResults[S]) Err() error {
	r := p.Reader
	input := r.String()
	last := p.Context.LastChild()

	if p.unconsumed() {
		if len(p.Exceptions) == 1 {
			return p.Exceptions[0].Err
		}
		if p.Context.Range().IsEmpty() {
			return p.unknownCommand(p.Context.RootNode())
		}
		frontier := last.frontier()
		if frontier.Redirect() == nil && !frontier.HasChildren() {
			return usage.TrailingInput(input, r.Cursor())
		}
		return usage.UnknownArgument(input, r.Cursor())
	}

	if last.Command() != nil {
		return nil
	}
	if len(p.Context.Nodes()) == 0 {
		return usage.UnknownCommand(input, r.Cursor())
	}

	frontier := last.frontier()
	if frontier.Redirect() != nil {
		frontier = frontier.Redirect()
	}
	var expected []string
	for _, child := range frontier.Children() {
		if child.CanUse(last.Source()) {
			expected = append(expected, child.UsageText())
		}
	}
	if len(expected) == 0 {
		return usage.UnknownCommand(input, r.Cursor())
	}
	return usage.MissingArgument(input, r.Cursor(), strings.Join(expected, "|"))
}

// unknownCommand builds the error for a token nothing matched, with
// similar literal names as hints.
func (p *ParseResults[S]) unknownCommand(parent *Node[S]) error {
	r := p.Reader
	token := r.Remaining()
	if i := strings.IndexByte(token, ArgumentSeparator); i >= 0 {
		token = token[:i]
	}
	err := usage.UnknownCommand(r.String(), r.Cursor())
	if hints := SimilarCommands(token, parent, defaultSimilarResults); len(hints) > 0 {
		err = err.WithSuggestions(hints...)
	}
	return err
}

// Parse walks the tree for input on behalf of source. The result can be
// inspected, executed, or used for completion.
func (d *Dispatcher[S]) Parse(input string, source S) *ParseResults[S] {
	return d.ParseReader(NewStringReader(input), source)
}

// ParseReader parses from the reader's current cursor.
func (d *Dispatcher[S]) ParseReader(r *StringReader, source S) *ParseResults[S] {
	b := NewContextBuilder(d, source, d.root, r.Cursor())
	return d.parseNodes(d.root, r, b)
}

func (d *Dispatcher[S]) parseNodes(node *Node[S], original *StringReader, soFar *ContextBuilder[S]) *ParseResults[S] {
	source := soFar.Source()
	var errs []NodeError[S]
	var potentials []*ParseResults[S]
	cursor := original.Cursor()

	for _, child := range node.RelevantNodes(original) {
		if !child.CanUse(source) {
			continue
		}
		ctx := soFar.Copy()
		reader := *original

		if err := d.matchNode(child, &reader, ctx); err != nil {
			d.logger.Debug("parse: %s rejected input at %d: %v", child, cursor, err)
			errs = append(errs, NodeError[S]{Node: child, Err: err})
			continue
		}

		ctx.WithCommand(child.Command())
		switch {
		case child.Redirect() == nil && !child.HasChildren():
			// Leaves stop at the end of their token so trailing input is
			// reported where it starts.
			potentials = append(potentials, &ParseResults[S]{Context: ctx, Reader: &reader})
		case reader.CanReadN(redirectLookahead(child)):
			reader.Skip()
			if target := child.Redirect(); target != nil {
				childCtx := NewContextBuilder(d, source, target, reader.Cursor())
				parse := d.parseNodes(target, &reader, childCtx)
				ctx.WithChild(parse.Context)
				return &ParseResults[S]{Context: ctx, Reader: parse.Reader, Exceptions: parse.Exceptions}
			}
			potentials = append(potentials, d.parseNodes(child, &reader, ctx))
		default:
			potentials = append(potentials, &ParseResults[S]{Context: ctx, Reader: &reader})
		}
	}

	if len(potentials) == 0 {
		return &ParseResults[S]{Context: soFar, Reader: original, Exceptions: errs}
	}

	slices.SortStableFunc(potentials, comparePotentials[S])
	return potentials[0]
}

// matchNode lets child consume its token and insists the token ends there.
func (d *Dispatcher[S]) matchNode(child *Node[S], r *StringReader, ctx *ContextBuilder[S]) error {
	if err := child.parse(r, ctx); err != nil {
		return err
	}
	if r.CanRead() && r.Peek() != ArgumentSeparator {
		return usage.ExpectedSeparator(r.String(), r.Cursor())
	}
	return nil
}

// redirectLookahead is how much input must remain to keep walking after
// child: a separator and a token, or just the separator when the redirect
// target may itself be empty.
func redirectLookahead[S comparable](child *Node[S]) int {
	if child.Redirect() == nil {
		return 2
	}
	return 1
}

// comparePotentials prefers branches that consumed everything, then
// branches without dead ends. Ties keep attempt order.
func comparePotentials[S comparable](a, b *ParseResults[S]) int {
	aDone, bDone := !a.Reader.CanRead(), !b.Reader.CanRead()
	switch {
	case aDone && !bDone:
		return -1
	case !aDone && bDone:
		return 1
	}
	aClean, bClean := len(a.Exceptions) == 0, len(b.Exceptions) == 0
	switch {
	case aClean && !bClean:
		return -1
	case !aClean && bClean:
		return 1
	}
	return 0
}
