package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/usage"
)

// AllSources selects every registered source.
const AllSources = "*"

const sourceSeparator = ','

// Sources is the registry "execute as" resolves names against.
type Sources struct {
	mu     sync.RWMutex
	byName map[string]domain.Source
	order  []string
}

// NewSources registers current plus the built-in guest, operator and
// admin sources. A built-in whose name is taken by current is skipped.
func NewSources(current domain.Source) *Sources {
	s := &Sources{byName: make(map[string]domain.Source)}
	s.Add(current)
	s.Add(domain.NewSource("guest", domain.LevelUser))
	s.Add(domain.NewSource("operator", domain.LevelOperator))
	s.Add(domain.NewSource("admin", domain.LevelAdmin))
	return s
}

// Add registers src unless its name is already known.
func (s *Sources) Add(src domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[src.Name]; ok {
		return
	}
	s.byName[src.Name] = src
	s.order = append(s.order, src.Name)
}

// Replace swaps the source registered under src.Name, adding it if new.
func (s *Sources) Replace(src domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[src.Name]; !ok {
		s.order = append(s.order, src.Name)
	}
	s.byName[src.Name] = src
}

func (s *Sources) Get(name string) (domain.Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.byName[name]
	return src, ok
}

// Names returns registered names in registration order.
func (s *Sources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Resolve maps names to sources, expanding "*" to every source. Each
// source appears once, in the order first named.
func (s *Sources) Resolve(names []string) ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		result []domain.Source
		seen   = make(map[string]bool)
	)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			result = append(result, s.byName[name])
		}
	}
	for _, name := range names {
		if name == AllSources {
			for _, n := range s.order {
				add(n)
			}
			continue
		}
		if _, ok := s.byName[name]; !ok {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		add(name)
	}
	return result, nil
}

// SourcesType parses a comma separated list of source names, or "*".
type SourcesType struct {
	sources *Sources
}

func SourcesArgument(sources *Sources) SourcesType {
	return SourcesType{sources: sources}
}

func (t SourcesType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	for r.CanRead() && r.Peek() != dispatchers.ArgumentSeparator {
		r.Skip()
	}
	text := r.String()[start:r.Cursor()]
	if text == "" {
		r.SetCursor(start)
		return nil, usage.InvalidChoice(r.String(), start, text)
	}

	names := strings.Split(text, string(sourceSeparator))
	offset := start
	for _, name := range names {
		if name != AllSources {
			if _, ok := t.sources.Get(name); !ok {
				r.SetCursor(offset)
				return nil, usage.InvalidChoice(r.String(), offset, name)
			}
		}
		offset += len(name) + 1
	}
	return names, nil
}

func (t SourcesType) Examples() []string {
	return []string{"alice", "alice,bob", AllSources}
}

// ListSuggestions completes the name after the last comma.
func (t SourcesType) ListSuggestions(_ context.Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	remaining := b.Remaining()
	offset := strings.LastIndexByte(remaining, sourceSeparator) + 1
	nb := b.CreateOffset(b.Start() + offset)
	partial := strings.ToLower(remaining[offset:])

	candidates := t.sources.Names()
	if offset == 0 {
		candidates = append(candidates, AllSources)
	}
	for _, name := range candidates {
		if strings.HasPrefix(strings.ToLower(name), partial) {
			nb.Suggest(name)
		}
	}
	return nb.Build(), nil
}
