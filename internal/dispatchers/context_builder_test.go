package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextBuilder_CopyIsIndependent(t *testing.T) {
	d := fooTree()
	b := NewContextBuilder(d, "src", d.Root(), 0)
	foo := d.FindNode([]string{"foo"})
	b.WithNode(foo, Between(0, 3))

	cp := b.Copy()
	cp.WithArgument("n", ParsedArgument{Range: Between(4, 5), Result: 5})
	cp.WithNode(d.FindNode([]string{"foo", "n"}), Between(4, 5))

	require.Len(t, b.Nodes(), 1)
	require.Empty(t, b.Arguments())
	require.Equal(t, Between(0, 3), b.Range())
	require.Len(t, cp.Nodes(), 2)
	require.Equal(t, Between(0, 5), cp.Range())
	require.Same(t, d, cp.Dispatcher())
}

func TestContextBuilder_WithSourceDoesNotLeakIntoCopy(t *testing.T) {
	d := fooTree()
	b := NewContextBuilder(d, "src", d.Root(), 0)

	cp := b.Copy().WithSource("other")

	require.Equal(t, "src", b.Source())
	require.Equal(t, "other", cp.Source())
	require.Equal(t, "other", cp.Build("").Source())
}

func TestContextBuilder_WithNodeCapturesForkAndModifier(t *testing.T) {
	d := New[string](Options{})
	all := mustRegister(d, Literal[string]("all").Fork(d.Root(), func(*CommandContext[string]) ([]string, error) {
		return nil, nil
	}))

	b := NewContextBuilder(d, "src", d.Root(), 0).WithNode(all, Between(0, 3))
	require.True(t, b.IsForked())

	ctx := b.Build("all")
	require.True(t, ctx.IsForked())
	require.NotNil(t, ctx.RedirectModifier())
	require.Equal(t, "all", ctx.Input())
	require.Same(t, d.Root(), ctx.RootNode())
}

func TestContextBuilder_FindSuggestionContext(t *testing.T) {
	d := fooTree()
	parse := d.Parse("foo 5", "src")

	tests := []struct {
		name     string
		cursor   int
		parent   *Node[string]
		startPos int
	}{
		{name: "inside first token", cursor: 1, parent: d.Root(), startPos: 0},
		{name: "end of first token", cursor: 3, parent: d.Root(), startPos: 0},
		{name: "inside argument", cursor: 5, parent: d.FindNode([]string{"foo"}), startPos: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := parse.Context.FindSuggestionContext(tt.cursor)
			require.NoError(t, err)
			require.Same(t, tt.parent, sc.Parent)
			require.Equal(t, tt.startPos, sc.StartPos)
		})
	}
}

func TestContextBuilder_FindSuggestionContextBeforeStart(t *testing.T) {
	d := fooTree()
	b := NewContextBuilder(d, "src", d.Root(), 3)
	_, err := b.FindSuggestionContext(1)
	require.Error(t, err)
}

func TestCommandContext_ArgumentNames(t *testing.T) {
	d := fooTree()
	ctx := d.Parse("foo 5", "src").Context.Build("foo 5")

	require.Equal(t, []string{"n"}, ctx.ArgumentNames())
	raw, ok := ctx.RawArgument("n")
	require.True(t, ok)
	require.Equal(t, Between(4, 5), raw.Range)
	require.True(t, ctx.HasNodes())
}
