package cli

import (
	"github.com/footprint-tools/brig/internal/actions"
	"github.com/footprint-tools/brig/internal/arguments"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
)

const maxHistoryLimit = 1000

type builder = dispatchers.Builder[domain.Source]

func literal(name string) *builder {
	return dispatchers.Literal[domain.Source](name)
}

func argument(name string, typ dispatchers.ArgumentType) *builder {
	return dispatchers.Argument[domain.Source](name, typ)
}

// BuildTree registers the built-in commands on d. deps.Dispatcher is set
// to d so help commands can walk the finished tree.
func BuildTree(d *dispatchers.Dispatcher[domain.Source], deps actions.Deps, sources *Sources) error {
	deps.Dispatcher = d

	say, err := d.Register(literal("say").
		Then(argument("message", arguments.Greedy()).
			Suggests(actions.SayHistorySuggestions(deps)).
			Executes(actions.Say(deps))))
	if err != nil {
		return err
	}

	// Registered bare first so its own children can point back at it.
	execute, err := d.Register(literal("execute"))
	if err != nil {
		return err
	}

	configKey := func() *builder {
		return argument("key", arguments.Choice(actions.ConfigKeyNames()...)).
			Suggests(actions.ConfigKeySuggestions)
	}
	operator := actions.AtLeast(domain.LevelOperator)

	commands := []*builder{
		literal("echo").
			Then(argument("text", arguments.Greedy()).Executes(actions.Echo(deps))),

		literal("add").
			Then(argument("a", arguments.AnyInteger()).
				Then(argument("b", arguments.AnyInteger()).Executes(actions.Add(deps)))),

		literal("tell").Redirect(say),

		literal("whoami").Executes(actions.Whoami(deps)),

		literal("version").Executes(actions.ShowVersion(deps)),

		literal("execute").
			Then(literal("as").Requires(operator).
				Then(argument("targets", SourcesArgument(sources)).
					Fork(execute, actions.AsTargets(sources.Resolve)))).
			Then(literal("level").
				Then(argument("level", arguments.Integer(domain.LevelUser, domain.LevelAdmin)).
					RedirectModified(execute, actions.AtLevel()))).
			Then(literal("run").Redirect(d.Root())),

		literal("history").
			Executes(actions.HistoryList(deps)).
			Then(argument("limit", arguments.Integer(1, maxHistoryLimit)).Executes(actions.HistoryList(deps))).
			Then(literal("clear").Requires(operator).Executes(actions.HistoryClear(deps))),

		literal("config").
			Then(literal("get").Then(configKey().Executes(actions.ConfigGet(deps)))).
			Then(literal("set").Requires(operator).
				Then(configKey().
					Then(argument("value", arguments.Greedy()).
						Suggests(actions.ConfigValueSuggestions).
						Executes(actions.ConfigSet(deps))))).
			Then(literal("unset").Requires(operator).
				Then(configKey().Executes(actions.ConfigUnset(deps)))).
			Then(literal("list").Executes(actions.ConfigList(deps))),

		literal("help").
			Executes(actions.Help(deps)).
			Then(argument("command", arguments.Greedy()).Executes(actions.HelpFor(deps))),

		literal("usage").Executes(actions.Usage(deps)),
	}

	for _, b := range commands {
		if _, err := d.Register(b); err != nil {
			return err
		}
	}
	return nil
}
