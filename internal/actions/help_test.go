package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/brig/internal/arguments"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
)

func helpDispatcher(t *testing.T, deps *Deps) *dispatchers.Dispatcher[domain.Source] {
	t.Helper()
	d := newDispatcher()
	deps.Dispatcher = d
	register(t, d, lit("add").Then(
		arg("a", arguments.AnyInteger()).Then(
			arg("b", arguments.AnyInteger()).Executes(Add(*deps)))))
	register(t, d, lit("secret").Requires(AtLeast(domain.LevelAdmin)).Executes(Whoami(*deps)))
	register(t, d, lit("help").
		Executes(Help(*deps)).
		Then(arg("command", arguments.Greedy()).Executes(HelpFor(*deps))))
	register(t, d, lit("usage").Executes(Usage(*deps)))
	return d
}

func TestHelp_ListsUsableCommands(t *testing.T) {
	deps, out := captureDeps()
	d := helpDispatcher(t, &deps)

	result, err := d.ExecuteInput("help", alice)

	require.NoError(t, err)
	require.Equal(t, 3, result)
	require.Equal(t, "add <a> <b>\nhelp [<command>]\nusage\n", out.String())
}

func TestHelp_AdminSeesRestricted(t *testing.T) {
	deps, out := captureDeps()
	d := helpDispatcher(t, &deps)

	_, err := d.ExecuteInput("help", domain.NewSource("root", domain.LevelAdmin))

	require.NoError(t, err)
	require.Contains(t, out.String(), "secret\n")
}

func TestHelpFor_Command(t *testing.T) {
	deps, out := captureDeps()
	d := helpDispatcher(t, &deps)

	_, err := d.ExecuteInput("help add", alice)

	require.NoError(t, err)
	require.Equal(t, "add <a> <b>\n", out.String())
}

func TestHelpFor_UnknownCommand(t *testing.T) {
	deps, _ := captureDeps()
	d := helpDispatcher(t, &deps)

	_, err := d.ExecuteInput("help nope", alice)

	require.Error(t, err)
	require.Contains(t, err.Error(), `no command named "nope"`)
}

func TestUsage_ListsEveryPath(t *testing.T) {
	deps, out := captureDeps()
	d := helpDispatcher(t, &deps)

	result, err := d.ExecuteInput("usage", alice)

	require.NoError(t, err)
	require.Equal(t, 4, result)
	require.Equal(t, "add <a> <b>\nhelp\nhelp <command>\nusage\n", out.String())
}
