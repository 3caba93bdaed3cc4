package dispatchers

import (
	"errors"
	"testing"

	"github.com/footprint-tools/brig/internal/usage"
	"github.com/stretchr/testify/require"
)

// fooTree is root -> foo -> <n:int> with a command on <n> that returns n.
func fooTree() *Dispatcher[string] {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("foo").
		Then(Argument[string]("n", intType{}).
			Executes(func(c *CommandContext[string]) (int, error) {
				return GetArgument[int](c, "n")
			})))
	return d
}

func requireUsageError(t *testing.T, err error, kind usage.ErrorKind, cursor int) {
	t.Helper()
	var ue *usage.Error
	require.True(t, errors.As(err, &ue), "expected *usage.Error, got %v", err)
	require.Equal(t, kind, ue.Kind, ue.Error())
	require.Equal(t, cursor, ue.Cursor, ue.Error())
}

func TestDispatcher_ParseAndExecute(t *testing.T) {
	d := fooTree()

	parse := d.Parse("foo 5", "src")
	require.NoError(t, parse.Err())
	require.Empty(t, parse.Exceptions)

	ctx := parse.Context.Build("foo 5")
	n, err := GetArgument[int](ctx, "n")
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, Between(0, 5), ctx.Range())
	require.Len(t, ctx.Nodes(), 2)

	result, err := d.Execute(parse)
	require.NoError(t, err)
	require.Equal(t, 5, result)
}

func TestDispatcher_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   usage.ErrorKind
		cursor int
	}{
		{name: "missing argument", input: "foo", kind: usage.ErrMissingArgument, cursor: 3},
		{name: "trailing space after literal", input: "foo ", kind: usage.ErrUnknownArgument, cursor: 3},
		{name: "trailing space after command", input: "foo 5 ", kind: usage.ErrTrailingInput, cursor: 5},
		{name: "bad integer", input: "foo five", kind: usage.ErrSyntax, cursor: 4},
		{name: "trailing input", input: "foo 5 bar", kind: usage.ErrTrailingInput, cursor: 5},
		{name: "unknown command", input: "bar", kind: usage.ErrUnknownCommand, cursor: 0},
		{name: "empty input", input: "", kind: usage.ErrUnknownCommand, cursor: 0},
		{name: "literal prefix only", input: "food", kind: usage.ErrUnknownCommand, cursor: 0},
		{name: "number glued to text", input: "foo 5x", kind: usage.ErrExpectedSeparator, cursor: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fooTree()
			_, err := d.ExecuteInput(tt.input, "src")
			requireUsageError(t, err, tt.kind, tt.cursor)
		})
	}
}

func TestDispatcher_MissingArgumentNamesExpected(t *testing.T) {
	d := fooTree()
	err := d.Parse("foo", "src").Err()

	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Contains(t, ue.Message, "<n>")
}

func TestDispatcher_UnknownCommandSuggestsSimilar(t *testing.T) {
	d := fooTree()
	_, err := d.ExecuteInput("fop 1", "src")

	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, []string{"foo"}, ue.Suggestions)
}

func TestDispatcher_ParseRecordsDeadEnds(t *testing.T) {
	d := fooTree()
	parse := d.Parse("foo five", "src")

	require.Len(t, parse.Exceptions, 1)
	n := d.FindNode([]string{"foo", "n"})
	require.NotNil(t, n)
	require.Error(t, parse.ExceptionFor(n))
	require.Nil(t, parse.ExceptionFor(d.FindNode([]string{"foo"})))
}

func TestDispatcher_ArgumentErrorWithoutPosition(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("x").Then(Argument[string]("v", failingType{}).Executes(returns(1))))

	err := d.Parse("x abc", "src").Err()
	requireUsageError(t, err, usage.ErrSyntax, 2)
}

func TestDispatcher_LiteralBeatsArgument(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("set").
		Then(Literal[string]("all").Executes(returns(1))).
		Then(Argument[string]("name", stubType{}).Executes(returns(2))))

	got, err := d.ExecuteInput("set all", "src")
	require.NoError(t, err)
	require.Equal(t, 1, got)

	got, err = d.ExecuteInput("set other", "src")
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestDispatcher_AmbiguousArgumentsResolveBySortKey(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("pick").
		Then(Argument[string]("b", stubType{}).Executes(returns(2))).
		Then(Argument[string]("a", stubType{}).Executes(returns(1))))

	for range 3 {
		got, err := d.ExecuteInput("pick x", "src")
		require.NoError(t, err)
		require.Equal(t, 1, got)
	}
}

func TestDispatcher_PrefersBranchThatConsumesInput(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("go").
		Then(Argument[string]("n", intType{}).Executes(returns(1))).
		Then(Argument[string]("word", stubType{}).
			Then(Literal[string]("fast").Executes(returns(2)))))

	got, err := d.ExecuteInput("go 5 fast", "src")
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestDispatcher_RequirementHidesNode(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("admin").
		Requires(func(s string) bool { return s == "root" }).
		Executes(returns(1)))

	_, err := d.ExecuteInput("admin", "guest")
	requireUsageError(t, err, usage.ErrUnknownCommand, 0)

	got, err := d.ExecuteInput("admin", "root")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestDispatcher_CommandFailure(t *testing.T) {
	d := New[string](Options{})
	boom := errors.New("boom")
	mustRegister(d, Literal[string]("fail").Executes(func(*CommandContext[string]) (int, error) {
		return 0, boom
	}))

	_, err := d.ExecuteInput("fail", "src")
	require.Equal(t, usage.ErrCommandFailure, usage.KindOf(err))
	require.ErrorIs(t, err, boom)
}

func TestDispatcher_Redirect(t *testing.T) {
	d := New[string](Options{})
	target := mustRegister(d, Literal[string]("actual").
		Then(Argument[string]("n", intType{}).Executes(func(c *CommandContext[string]) (int, error) {
			return GetArgument[int](c, "n")
		})))
	mustRegister(d, Literal[string]("alias").Redirect(target))

	parse := d.Parse("alias 4", "src")
	require.NoError(t, parse.Err())

	ctx := parse.Context.Build("alias 4")
	require.NotNil(t, ctx.Child())
	require.Equal(t, Between(0, 5), ctx.Range())
	require.Equal(t, Between(6, 7), ctx.Child().Range())
	require.Same(t, ctx.Child(), ctx.LastChild())

	got, err := d.Execute(parse)
	require.NoError(t, err)
	require.Equal(t, 4, got)
}

func TestDispatcher_RedirectToRoot(t *testing.T) {
	d := fooTree()
	mustRegister(d, Literal[string]("run").Redirect(d.Root()))

	got, err := d.ExecuteInput("run run foo 3", "src")
	require.NoError(t, err)
	require.Equal(t, 3, got)

	_, err = d.ExecuteInput("run", "src")
	requireUsageError(t, err, usage.ErrMissingArgument, 3)
}

func TestDispatcher_RedirectModifierChangesSource(t *testing.T) {
	d := New[string](Options{})
	var seen []string
	mustRegister(d, Literal[string]("who").Executes(func(c *CommandContext[string]) (int, error) {
		seen = append(seen, c.Source())
		return 1, nil
	}))
	mustRegister(d, Literal[string]("sudo").RedirectModified(d.Root(), func(*CommandContext[string]) ([]string, error) {
		return []string{"root"}, nil
	}))

	got, err := d.ExecuteInput("sudo who", "user")
	require.NoError(t, err)
	require.Equal(t, 1, got)
	require.Equal(t, []string{"root"}, seen)
}

func TestDispatcher_RedirectModifierFailureAborts(t *testing.T) {
	d := New[string](Options{})
	mustRegister(d, Literal[string]("who").Executes(returns(1)))
	mustRegister(d, Literal[string]("sudo").RedirectModified(d.Root(), func(*CommandContext[string]) ([]string, error) {
		return nil, errors.New("denied")
	}))

	_, err := d.ExecuteInput("sudo who", "user")
	require.Equal(t, usage.ErrCommandFailure, usage.KindOf(err))
}

func forkTree(fail map[string]bool) (*Dispatcher[string], *[]string) {
	d := New[string](Options{})
	var ran []string
	mustRegister(d, Literal[string]("ping").Executes(func(c *CommandContext[string]) (int, error) {
		if fail[c.Source()] {
			return 0, errors.New("unreachable " + c.Source())
		}
		ran = append(ran, c.Source())
		return 10, nil
	}))
	mustRegister(d, Literal[string]("all").Fork(d.Root(), func(*CommandContext[string]) ([]string, error) {
		return []string{"a", "b", "c"}, nil
	}))
	return d, &ran
}

func TestDispatcher_ForkRunsEverySource(t *testing.T) {
	d, ran := forkTree(nil)

	got, err := d.ExecuteInput("all ping", "src")
	require.NoError(t, err)
	require.Equal(t, 3, got)
	require.Equal(t, []string{"a", "b", "c"}, *ran)
}

func TestDispatcher_ForkToleratesPartialFailure(t *testing.T) {
	d, ran := forkTree(map[string]bool{"b": true})

	got, err := d.ExecuteInput("all ping", "src")
	require.NoError(t, err)
	require.Equal(t, 2, got)
	require.Equal(t, []string{"a", "c"}, *ran)
}

func TestDispatcher_ForkFailsWhenEveryPathFails(t *testing.T) {
	d, _ := forkTree(map[string]bool{"a": true, "b": true, "c": true})

	_, err := d.ExecuteInput("all ping", "src")
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, usage.ErrCommandFailure, ue.Kind)
	require.Contains(t, ue.Cause.Error(), "unreachable b")
}

func TestDispatcher_NestedForks(t *testing.T) {
	d, ran := forkTree(nil)

	got, err := d.ExecuteInput("all all ping", "src")
	require.NoError(t, err)
	require.Equal(t, 9, got)
	require.Len(t, *ran, 9)
}

func TestDispatcher_ConsumerSeesEveryAttempt(t *testing.T) {
	d, _ := forkTree(map[string]bool{"b": true})

	type call struct {
		source  string
		success bool
		result  int
	}
	var calls []call
	d.SetConsumer(func(c *CommandContext[string], success bool, result int) {
		calls = append(calls, call{c.Source(), success, result})
	})

	_, err := d.ExecuteInput("all ping", "src")
	require.NoError(t, err)
	require.Equal(t, []call{{"a", true, 10}, {"b", false, 0}, {"c", true, 10}}, calls)

	d.SetConsumer(nil)
	_, err = d.ExecuteInput("all ping", "src")
	require.NoError(t, err)
}

func TestDispatcher_ExecuteIsDeterministic(t *testing.T) {
	d := fooTree()
	mustRegister(d, Argument[string]("x", failingType{}).Executes(returns(9)))
	for _, input := range []string{"foo 1", "foo", "foo x", "zzz", "foo 1 "} {
		first, firstErr := d.ExecuteInput(input, "src")
		second, secondErr := d.ExecuteInput(input, "src")
		require.Equal(t, first, second)
		require.Equal(t, firstErr, secondErr)

		a, b := d.Parse(input, "src"), d.Parse(input, "src")
		require.Equal(t, a.Reader.Cursor(), b.Reader.Cursor(), input)
		require.Equal(t, a.Context.Nodes(), b.Context.Nodes(), input)
		require.Equal(t, a.Exceptions, b.Exceptions, input)
	}
}

func TestDispatcher_PathAndFindNode(t *testing.T) {
	d := fooTree()
	n := d.FindNode([]string{"foo", "n"})
	require.NotNil(t, n)
	require.Equal(t, []string{"foo", "n"}, d.Path(n))
	require.Same(t, n, d.FindNodeInput("foo n"))
	require.Equal(t, []string{}, d.Path(d.Root()))
	require.Nil(t, d.FindNode([]string{"foo", "missing"}))
	require.Nil(t, d.Path(NewRoot[string]()))
}

func TestDispatcher_RegisterMerges(t *testing.T) {
	d := New[string](Options{})
	first := mustRegister(d, Literal[string]("cfg").Then(Literal[string]("get").Executes(returns(1))))
	second := mustRegister(d, Literal[string]("cfg").Then(Literal[string]("set").Executes(returns(2))))

	require.Same(t, first, second)
	require.Len(t, d.Root().Children(), 1)

	got, err := d.ExecuteInput("cfg set", "src")
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestGetArgument_Errors(t *testing.T) {
	d := fooTree()
	ctx := d.Parse("foo 5", "src").Context.Build("foo 5")

	_, err := GetArgument[int](ctx, "missing")
	require.Equal(t, usage.ErrNoSuchArgument, usage.KindOf(err))

	_, err = GetArgument[string](ctx, "n")
	require.Equal(t, usage.ErrArgumentType, usage.KindOf(err))
}

type player struct {
	name  string
	level int
}

func TestCommandContext_CopyFor(t *testing.T) {
	d := New[player](Options{})
	_, err := d.Register(Literal[player]("x").Executes(func(*CommandContext[player]) (int, error) { return 0, nil }))
	require.NoError(t, err)
	ctx := d.Parse("x", player{"a", 1}).Context.Build("x")

	require.Same(t, ctx, ctx.CopyFor(player{"a", 1}))

	other := ctx.CopyFor(player{"b", 2})
	require.NotSame(t, ctx, other)
	require.Equal(t, player{"b", 2}, other.Source())
	require.Equal(t, ctx.Nodes(), other.Nodes())
	require.Equal(t, ctx.Range(), other.Range())
}
