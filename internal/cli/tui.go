package cli

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/ui/style"
)

const (
	maxTUILines           = 1000
	maxVisibleSuggestions = 8
	reservedRows          = 2 // input line and suggestion bar
)

type tuiKeyMap struct {
	Quit     key.Binding
	Run      key.Binding
	Complete key.Binding
	Next     key.Binding
	Prev     key.Binding
	Dismiss  key.Binding
}

var tuiKeys = tuiKeyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Run:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Next:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
	Prev:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
	Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
}

// Messages

type suggestionsMsg struct {
	seq  int
	list []dispatchers.Suggestion
}

type resultMsg struct {
	input  string
	output string
	err    error
}

// tuiModel is the Bubble Tea model for the interactive shell. Suggestions
// are computed off the update loop; seq drops answers for stale input.
type tuiModel struct {
	shell  *Shell
	prompt string

	input  textinput.Model
	output viewport.Model
	lines  []string

	suggestions []dispatchers.Suggestion
	selected    int
	seq         int
}

func newTUIModel(shell *Shell, prompt string) tuiModel {
	ti := textinput.New()
	ti.Prompt = style.Info(prompt)
	ti.Placeholder = "help"
	ti.Focus()

	return tuiModel{
		shell:  shell,
		prompt: prompt,
		input:  ti,
		output: viewport.New(80, 20),
	}
}

// RunTUI runs the full screen shell until the user quits or ctx ends.
func RunTUI(ctx context.Context, shell *Shell, prompt string) error {
	p := tea.NewProgram(
		newTUIModel(shell, prompt),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model
func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.suggest())
}

// Update implements tea.Model
func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.prompt)-1, 10)
		m.output.Width = msg.Width
		m.output.Height = max(msg.Height-reservedRows, 1)
		m.output.GotoBottom()
		return m, nil

	case suggestionsMsg:
		if msg.seq == m.seq {
			m.suggestions = msg.list
			m.selected = 0
		}
		return m, nil

	case resultMsg:
		m.appendResult(msg)
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	value, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != value || m.input.Position() != pos {
		cmd = tea.Batch(cmd, m.requestSuggestions())
	}
	return m, cmd
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, tuiKeys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, tuiKeys.Run):
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil, true
		}
		if slices.Contains(exitWords, input) {
			return m, tea.Quit, true
		}
		m.input.Reset()
		m.suggestions = nil
		cmd := tea.Batch(m.run(input), m.requestSuggestions())
		return m, cmd, true

	case key.Matches(msg, tuiKeys.Complete):
		if len(m.suggestions) == 0 {
			return m, nil, true
		}
		sg := m.completion()
		value := sg.Apply(m.input.Value())
		m.input.SetValue(value)
		m.input.SetCursor(runeOffset(value, sg.Range.Start+len(sg.Text)))
		cmd := m.requestSuggestions()
		return m, cmd, true

	case key.Matches(msg, tuiKeys.Next) && len(m.suggestions) > 0:
		m.selected = (m.selected + 1) % len(m.suggestions)
		return m, nil, true

	case key.Matches(msg, tuiKeys.Prev) && len(m.suggestions) > 0:
		m.selected = (m.selected + len(m.suggestions) - 1) % len(m.suggestions)
		return m, nil, true

	case key.Matches(msg, tuiKeys.Dismiss):
		m.suggestions = nil
		return m, nil, true
	}
	return m, nil, false
}

func (m *tuiModel) requestSuggestions() tea.Cmd {
	m.seq++
	return m.suggest()
}

func (m tuiModel) suggest() tea.Cmd {
	shell, seq := m.shell, m.seq
	input := m.input.Value()
	pos := byteOffset(input, m.input.Position())
	return func() tea.Msg {
		s, err := shell.Complete(context.Background(), input, pos)
		if err != nil {
			return suggestionsMsg{seq: seq}
		}
		return suggestionsMsg{seq: seq, list: s.List}
	}
}

func (m tuiModel) run(input string) tea.Cmd {
	shell := m.shell
	return func() tea.Msg {
		var buf bytes.Buffer
		_, err := shell.RunTo(&buf, input)
		return resultMsg{input: input, output: buf.String(), err: err}
	}
}

func (m *tuiModel) appendResult(msg resultMsg) {
	m.lines = append(m.lines, style.Muted(m.prompt)+msg.input)
	if out := strings.TrimRight(msg.output, "\n"); out != "" {
		m.lines = append(m.lines, strings.Split(out, "\n")...)
	}
	if msg.err != nil {
		m.lines = append(m.lines, strings.Split(style.RenderError(msg.err), "\n")...)
	}
	if len(m.lines) > maxTUILines {
		m.lines = m.lines[len(m.lines)-maxTUILines:]
	}
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

// View implements tea.Model
func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.suggestionBar())
	return b.String()
}

func (m tuiModel) suggestionBar() string {
	if len(m.suggestions) == 0 {
		var hints []string
		for _, binding := range []key.Binding{tuiKeys.Complete, tuiKeys.Run, tuiKeys.Quit} {
			h := binding.Help()
			hints = append(hints, h.Key+" "+h.Desc)
		}
		return style.Muted(strings.Join(hints, " · "))
	}

	// Keep the selection inside the visible window.
	first := max(0, m.selected-maxVisibleSuggestions+1)
	last := min(len(m.suggestions), first+maxVisibleSuggestions)

	parts := make([]string, 0, last-first+1)
	for i := first; i < last; i++ {
		text := m.suggestions[i].Text
		if i == m.selected {
			parts = append(parts, style.Highlight(text))
		} else {
			parts = append(parts, style.Muted(text))
		}
	}
	if tip := m.suggestions[m.selected].Tooltip; tip != "" {
		parts = append(parts, style.Info(tip))
	}
	return strings.Join(parts, "  ")
}

// completion picks what Tab inserts. Until the user moves the selection,
// a shared prefix longer than the typed text is inserted first.
func (m tuiModel) completion() dispatchers.Suggestion {
	sg := m.suggestions[m.selected]
	if m.selected != 0 || len(m.suggestions) < 2 {
		return sg
	}
	prefix := dispatchers.CommonPrefix(&dispatchers.Suggestions{Range: sg.Range, List: m.suggestions})
	if len(prefix) > sg.Range.Len() {
		return dispatchers.Suggestion{Range: sg.Range, Text: prefix}
	}
	return sg
}
