package dispatchers

import (
	"slices"
	"strconv"
	"strings"
)

// Suggestion replaces Range of the input with Text.
type Suggestion struct {
	Range   StringRange
	Text    string
	Tooltip string
}

// Apply returns input with the suggestion substituted in.
func (s Suggestion) Apply(input string) string {
	if s.Range.Start == 0 && s.Range.End == len(input) {
		return s.Text
	}
	var sb strings.Builder
	if s.Range.Start > 0 {
		sb.WriteString(input[:s.Range.Start])
	}
	sb.WriteString(s.Text)
	if s.Range.End < len(input) {
		sb.WriteString(input[s.Range.End:])
	}
	return sb.String()
}

// Expand widens the suggestion to rng, filling the gap from input so that
// applying it yields the same text.
func (s Suggestion) Expand(command string, rng StringRange) Suggestion {
	if s.Range == rng {
		return s
	}
	var sb strings.Builder
	if rng.Start < s.Range.Start {
		sb.WriteString(command[rng.Start:s.Range.Start])
	}
	sb.WriteString(s.Text)
	if rng.End > s.Range.End {
		sb.WriteString(command[s.Range.End:rng.End])
	}
	return Suggestion{Range: rng, Text: sb.String(), Tooltip: s.Tooltip}
}

func compareSuggestions(a, b Suggestion) int {
	if c := strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text)); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}

// Suggestions is a sorted, duplicate free set of suggestions that all cover
// the same Range.
type Suggestions struct {
	Range StringRange
	List  []Suggestion
}

func (s *Suggestions) IsEmpty() bool {
	return len(s.List) == 0
}

// Texts returns the suggestion texts in order.
func (s *Suggestions) Texts() []string {
	out := make([]string, len(s.List))
	for i, sg := range s.List {
		out[i] = sg.Text
	}
	return out
}

func EmptySuggestions() *Suggestions {
	return &Suggestions{Range: At(0)}
}

// CreateSuggestions expands every suggestion to the range they jointly cover,
// drops duplicates and sorts case-insensitively.
func CreateSuggestions(command string, list []Suggestion) *Suggestions {
	if len(list) == 0 {
		return EmptySuggestions()
	}

	start, end := list[0].Range.Start, list[0].Range.End
	for _, s := range list[1:] {
		start = min(start, s.Range.Start)
		end = max(end, s.Range.End)
	}
	rng := Between(start, end)

	seen := make(map[Suggestion]struct{}, len(list))
	expanded := make([]Suggestion, 0, len(list))
	for _, s := range list {
		e := s.Expand(command, rng)
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		expanded = append(expanded, e)
	}
	slices.SortStableFunc(expanded, compareSuggestions)
	return &Suggestions{Range: rng, List: expanded}
}

// MergeSuggestions combines the results of several providers for command.
func MergeSuggestions(command string, input []*Suggestions) *Suggestions {
	var all []Suggestion
	for _, s := range input {
		if s == nil {
			continue
		}
		all = append(all, s.List...)
	}
	if len(all) == 0 {
		return EmptySuggestions()
	}
	return CreateSuggestions(command, all)
}

// SuggestionsBuilder collects suggestions for the token that starts at Start.
type SuggestionsBuilder struct {
	input          string
	start          int
	remaining      string
	remainingLower string
	result         []Suggestion
}

// NewSuggestionsBuilder starts a builder at byte offset start. Only the
// remainder is lowercased: case mapping can change byte lengths.
func NewSuggestionsBuilder(input string, start int) *SuggestionsBuilder {
	return &SuggestionsBuilder{
		input:          input,
		start:          start,
		remaining:      input[start:],
		remainingLower: strings.ToLower(input[start:]),
	}
}

func (b *SuggestionsBuilder) Input() string              { return b.input }
func (b *SuggestionsBuilder) Start() int                 { return b.start }
func (b *SuggestionsBuilder) Remaining() string          { return b.remaining }
func (b *SuggestionsBuilder) RemainingLowerCase() string { return b.remainingLower }

// Suggest adds text unless it is exactly what was already typed.
func (b *SuggestionsBuilder) Suggest(text string) *SuggestionsBuilder {
	return b.SuggestWithTooltip(text, "")
}

func (b *SuggestionsBuilder) SuggestWithTooltip(text, tooltip string) *SuggestionsBuilder {
	if text == b.remaining {
		return b
	}
	b.result = append(b.result, Suggestion{
		Range:   Between(b.start, len(b.input)),
		Text:    text,
		Tooltip: tooltip,
	})
	return b
}

func (b *SuggestionsBuilder) SuggestInt(value int) *SuggestionsBuilder {
	return b.Suggest(strconv.Itoa(value))
}

// Add appends everything collected by other.
func (b *SuggestionsBuilder) Add(other *SuggestionsBuilder) *SuggestionsBuilder {
	b.result = append(b.result, other.result...)
	return b
}

func (b *SuggestionsBuilder) Build() *Suggestions {
	return CreateSuggestions(b.input, b.result)
}

// CreateOffset starts a fresh builder over the same input at start.
func (b *SuggestionsBuilder) CreateOffset(start int) *SuggestionsBuilder {
	return NewSuggestionsBuilder(b.input, start)
}

func (b *SuggestionsBuilder) Restart() *SuggestionsBuilder {
	return b.CreateOffset(b.start)
}
