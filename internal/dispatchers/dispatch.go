package dispatchers

import (
	"strings"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
	"github.com/footprint-tools/brig/internal/usage"
)

// ResultConsumer observes every terminal command the dispatcher attempted,
// including failed fork paths and failed redirect modifiers.
type ResultConsumer[S comparable] func(ctx *CommandContext[S], success bool, result int)

// Options configures a Dispatcher. The zero value is usable.
type Options struct {
	// Logger receives debug traces of dead ends and failed paths.
	Logger domain.Logger

	// SuggestionLimit bounds concurrently running suggestion providers.
	// Zero or less means no bound.
	SuggestionLimit int
}

// Dispatcher parses and executes input against a command tree rooted at
// one root node. The tree must not be mutated while other goroutines parse.
type Dispatcher[S comparable] struct {
	root            *Node[S]
	logger          domain.Logger
	consumer        ResultConsumer[S]
	suggestionLimit int
}

// New returns a dispatcher with an empty root.
func New[S comparable](opts Options) *Dispatcher[S] {
	return NewWithRoot(NewRoot[S](), opts)
}

// NewWithRoot returns a dispatcher over an existing tree.
func NewWithRoot[S comparable](root *Node[S], opts Options) *Dispatcher[S] {
	logger := opts.Logger
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Dispatcher[S]{
		root:            root,
		logger:          logger,
		consumer:        func(*CommandContext[S], bool, int) {},
		suggestionLimit: opts.SuggestionLimit,
	}
}

func (d *Dispatcher[S]) Root() *Node[S] {
	return d.root
}

// Register builds the literal and merges it into the root.
func (d *Dispatcher[S]) Register(b *Builder[S]) (*Node[S], error) {
	node, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := d.root.AddChild(node); err != nil {
		return nil, err
	}
	return d.root.Child(node.Name()), nil
}

// SetConsumer replaces the result consumer. A nil consumer disables it.
func (d *Dispatcher[S]) SetConsumer(consumer ResultConsumer[S]) {
	if consumer == nil {
		consumer = func(*CommandContext[S], bool, int) {}
	}
	d.consumer = consumer
}

// ExecuteInput parses and executes input in one step.
func (d *Dispatcher[S]) ExecuteInput(input string, source S) (int, error) {
	return d.Execute(d.Parse(input, source))
}

// Execute runs the commands a parse resolved to.
//
// Without forks the command results are summed and the first failure is
// returned as is. Once a fork was crossed every path runs independently:
// the result is the number of paths that succeeded, and an error is
// returned only if no path succeeded.
func (d *Dispatcher[S]) Execute(parse *ParseResults[S]) (int, error) {
	if err := parse.Err(); err != nil {
		return 0, err
	}

	input := parse.Reader.String()
	original := parse.Context.Build(input)

	var (
		forked          bool
		foundCommand    bool
		result          int
		successfulForks int
		failures        []error
	)

	contexts := []*CommandContext[S]{original}
	for len(contexts) > 0 {
		var next []*CommandContext[S]

		for _, ctx := range contexts {
			if child := ctx.Child(); child != nil {
				forked = forked || ctx.IsForked()
				if !child.HasNodes() {
					continue
				}
				foundCommand = true

				modifier := ctx.RedirectModifier()
				if modifier == nil {
					next = append(next, child.CopyFor(ctx.Source()))
					continue
				}

				sources, err := modifier(ctx)
				if err != nil {
					d.consumer(ctx, false, 0)
					if !forked {
						return 0, usage.CommandFailure(err)
					}
					d.logger.Debug("execute: redirect modifier failed for %v: %v", ctx.Source(), err)
					failures = append(failures, err)
					continue
				}
				for _, source := range sources {
					next = append(next, child.CopyFor(source))
				}
				continue
			}

			command := ctx.Command()
			if command == nil {
				continue
			}
			foundCommand = true

			value, err := command(ctx)
			if err != nil {
				d.consumer(ctx, false, 0)
				if !forked {
					return 0, usage.CommandFailure(err)
				}
				d.logger.Debug("execute: fork path for %v failed: %v", ctx.Source(), err)
				failures = append(failures, err)
				continue
			}

			result += value
			successfulForks++
			d.consumer(ctx, true, value)
		}

		contexts = next
	}

	if !foundCommand {
		d.consumer(original, false, 0)
		return 0, usage.UnknownCommand(input, parse.Reader.Cursor())
	}

	if forked {
		if successfulForks == 0 && len(failures) > 0 {
			return 0, usage.ForkFailure(failures)
		}
		return successfulForks, nil
	}
	return result, nil
}

// Path returns the names leading from the root to target, or nil when the
// node is not reachable through children.
func (d *Dispatcher[S]) Path(target *Node[S]) []string {
	var walk func(node *Node[S], prefix []string) []string
	walk = func(node *Node[S], prefix []string) []string {
		for _, child := range node.Children() {
			path := append(append([]string(nil), prefix...), child.Name())
			if child == target {
				return path
			}
			if found := walk(child, path); found != nil {
				return found
			}
		}
		return nil
	}
	if target == d.root {
		return []string{}
	}
	return walk(d.root, nil)
}

// FindNode follows path by child name. It returns nil when any step is
// missing.
func (d *Dispatcher[S]) FindNode(path []string) *Node[S] {
	node := d.root
	for _, name := range path {
		node = node.Child(name)
		if node == nil {
			return nil
		}
	}
	return node
}

// FindNodeInput is FindNode for a space separated path.
func (d *Dispatcher[S]) FindNodeInput(path string) *Node[S] {
	return d.FindNode(strings.Fields(path))
}

// FindAmbiguities runs the ambiguity check over the whole tree.
func (d *Dispatcher[S]) FindAmbiguities(consumer AmbiguityConsumer[S]) {
	d.root.FindAmbiguities(consumer)
}
