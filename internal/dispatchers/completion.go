package dispatchers

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CompletionSuggestions completes the parsed input at its end.
func (d *Dispatcher[S]) CompletionSuggestions(ctx context.Context, parse *ParseResults[S]) (*Suggestions, error) {
	return d.CompletionSuggestionsAt(ctx, parse, parse.Reader.TotalLength())
}

// CompletionSuggestionsFor parses input for source and completes it at cursor.
func (d *Dispatcher[S]) CompletionSuggestionsFor(ctx context.Context, input string, source S, cursor int) (*Suggestions, error) {
	cursor = min(max(cursor, 0), len(input))
	return d.CompletionSuggestionsAt(ctx, d.Parse(input[:cursor], source), cursor)
}

// CompletionSuggestionsAt asks every usable child of the frontier for
// candidates at cursor. Providers run concurrently, bounded by
// Options.SuggestionLimit; one that fails or is still running when ctx ends
// contributes nothing. The merged result is produced after all of them
// returned.
func (d *Dispatcher[S]) CompletionSuggestionsAt(ctx context.Context, parse *ParseResults[S], cursor int) (*Suggestions, error) {
	full := parse.Reader.String()
	cursor = min(max(cursor, 0), len(full))

	sc, err := parse.Context.FindSuggestionContext(cursor)
	if err != nil {
		return nil, err
	}
	start := min(sc.StartPos, cursor)
	truncated := full[:cursor]
	source := parse.Context.Source()
	cc := parse.Context.Build(truncated)

	children := sc.Parent.Children()
	results := make([]*Suggestions, len(children))

	var g errgroup.Group
	if d.suggestionLimit > 0 {
		g.SetLimit(d.suggestionLimit)
	}
	for i, child := range children {
		if !child.CanUse(source) {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			b := NewSuggestionsBuilder(truncated, start)
			s, err := awaitSuggestions(ctx, child, cc, b)
			if err != nil {
				d.logger.Debug("suggest: %s contributed nothing: %v", child, err)
				return nil
			}
			results[i] = s
			return nil
		})
	}
	_ = g.Wait()

	return MergeSuggestions(full, results), nil
}

// awaitSuggestions runs the node's provider but stops waiting when ctx ends.
// A provider that ignores ctx keeps running in the background; its result is
// discarded.
func awaitSuggestions[S comparable](ctx context.Context, node *Node[S], cc *CommandContext[S], b *SuggestionsBuilder) (*Suggestions, error) {
	type outcome struct {
		suggestions *Suggestions
		err         error
	}
	done := make(chan outcome, 1)
	go func() {
		s, err := node.listSuggestions(ctx, cc, b)
		done <- outcome{suggestions: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.suggestions, o.err
	}
}

// CommonPrefix returns the longest prefix shared by every suggestion text,
// compared case-insensitively. Line editors use it for partial completion.
func CommonPrefix(s *Suggestions) string {
	if s == nil || len(s.List) == 0 {
		return ""
	}
	prefix := s.List[0].Text
	for _, sg := range s.List[1:] {
		n := 0
		for n < len(prefix) && n < len(sg.Text) && strings.EqualFold(prefix[n:n+1], sg.Text[n:n+1]) {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
