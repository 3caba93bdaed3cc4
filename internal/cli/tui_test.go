package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/usage"
)

func typeText(t *testing.T, m tuiModel, text string) tuiModel {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(tuiModel)
	}
	return m
}

func press(m tuiModel, k tea.KeyType) (tuiModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(tuiModel), cmd
}

func TestTUI_TypingRequestsSuggestions(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")

	m = typeText(t, m, "ec")

	require.Equal(t, "ec", m.input.Value())
	require.Equal(t, 2, m.seq)
	msg := m.suggest()()
	require.Equal(t, suggestionsMsg{seq: 2, list: []dispatchers.Suggestion{
		{Range: dispatchers.Between(0, 2), Text: "echo"},
	}}, msg)
}

func TestTUI_StaleSuggestionsIgnored(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := typeText(t, newTUIModel(env.shell, "brig> "), "e")

	next, _ := m.Update(suggestionsMsg{seq: m.seq - 1, list: []dispatchers.Suggestion{{Text: "stale"}}})
	m = next.(tuiModel)
	require.Empty(t, m.suggestions)

	next, _ = m.Update(suggestionsMsg{seq: m.seq, list: []dispatchers.Suggestion{{Text: "fresh"}}})
	m = next.(tuiModel)
	require.Len(t, m.suggestions, 1)
}

func TestTUI_TabAppliesSelected(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := typeText(t, newTUIModel(env.shell, "brig> "), "e")
	next, _ := m.Update(m.suggest()())
	m = next.(tuiModel)
	require.Len(t, m.suggestions, 2)

	m, _ = press(m, tea.KeyDown)
	require.Equal(t, 1, m.selected)

	m, cmd := press(m, tea.KeyTab)
	require.Equal(t, "execute", m.input.Value())
	require.NotNil(t, cmd)
}

func TestTUI_TabInsertsCommonPrefix(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := typeText(t, newTUIModel(env.shell, "brig> "), "c")
	m.suggestions = []dispatchers.Suggestion{
		{Range: dispatchers.Between(0, 1), Text: "config"},
		{Range: dispatchers.Between(0, 1), Text: "configure"},
	}

	m, _ = press(m, tea.KeyTab)
	require.Equal(t, "config", m.input.Value())
}

func TestTUI_SuggestUsesByteOffsets(t *testing.T) {
	env := newTestEnv(t, domain.LevelOperator)
	env.sources.Add(domain.NewSource("zoë", domain.LevelUser))
	m := typeText(t, newTUIModel(env.shell, "brig> "), "execute as zoë,gu")

	msg := m.suggest()().(suggestionsMsg)
	require.Len(t, msg.list, 1)
	require.Equal(t, "guest", msg.list[0].Text)

	next, _ := m.Update(msg)
	m, _ = press(next.(tuiModel), tea.KeyTab)
	require.Equal(t, "execute as zoë,guest", m.input.Value())
	require.Equal(t, len([]rune("execute as zoë,guest")), m.input.Position())
}

func TestTUI_TabMidLineLeavesCursorAfterInsertion(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")
	m.input.SetValue("ech hi")
	m.input.SetCursor(3)
	m.suggestions = []dispatchers.Suggestion{{Range: dispatchers.Between(0, 3), Text: "echo"}}

	m, _ = press(m, tea.KeyTab)

	require.Equal(t, "echo hi", m.input.Value())
	require.Equal(t, 4, m.input.Position())
}

func TestTUI_SelectionWraps(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")
	m.suggestions = []dispatchers.Suggestion{{Text: "a"}, {Text: "b"}, {Text: "c"}}

	m, _ = press(m, tea.KeyUp)
	require.Equal(t, 2, m.selected)
	m, _ = press(m, tea.KeyDown)
	require.Equal(t, 0, m.selected)

	m, _ = press(m, tea.KeyEsc)
	require.Empty(t, m.suggestions)
}

func TestTUI_EnterRunsInput(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := typeText(t, newTUIModel(env.shell, "brig> "), "echo hi")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.Empty(t, m.input.Value())

	msg := m.run("echo hi")()
	require.Equal(t, resultMsg{input: "echo hi", output: "hi\n"}, msg)

	next, _ := m.Update(msg)
	m = next.(tuiModel)
	require.Equal(t, []string{"brig> echo hi", "hi"}, m.lines)
}

func TestTUI_ErrorsAreRendered(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")

	next, _ := m.Update(resultMsg{input: "sya", err: usage.UnknownCommand("sya", 0)})
	m = next.(tuiModel)

	require.Contains(t, m.lines, "Unknown command")
	require.Contains(t, m.View(), "^")
}

func TestTUI_CommandFailureKeepsOutput(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")

	next, _ := m.Update(resultMsg{input: "x", output: "partial\n", err: errors.New("boom")})
	m = next.(tuiModel)

	require.Equal(t, []string{"brig> x", "partial", "boom"}, m.lines)
}

func TestTUI_Quit(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")

	_, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())

	m = typeText(t, m, "exit")
	_, cmd = press(m, tea.KeyEnter)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTUI_SuggestionBar(t *testing.T) {
	env := newTestEnv(t, domain.LevelUser)
	m := newTUIModel(env.shell, "brig> ")

	require.Contains(t, m.suggestionBar(), "tab complete")

	m.suggestions = []dispatchers.Suggestion{{Text: "echo"}, {Text: "execute", Tooltip: "run as others"}}
	m.selected = 1
	require.Equal(t, "echo  execute  run as others", m.suggestionBar())
}
