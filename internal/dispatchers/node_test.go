package dispatchers

import (
	"testing"

	"github.com/footprint-tools/brig/internal/usage"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, b *Builder[string]) *Node[string] {
	t.Helper()
	node, err := b.Build()
	require.NoError(t, err)
	return node
}

func TestNode_AddChildRejectsRoot(t *testing.T) {
	root := NewRoot[string]()
	err := root.AddChild(NewRoot[string]())
	require.Equal(t, usage.ErrStructure, usage.KindOf(err))
}

func TestNode_AddChildMergesByName(t *testing.T) {
	root := NewRoot[string]()
	first := build(t, Literal[string]("foo").Then(Literal[string]("a")))
	second := build(t, Literal[string]("foo").Then(Literal[string]("b")).Executes(returns(7)))

	require.NoError(t, root.AddChild(first))
	require.NoError(t, root.AddChild(second))

	require.Len(t, root.Children(), 1)
	merged := root.Child("foo")
	require.Same(t, first, merged)
	require.NotNil(t, merged.Child("a"))
	require.NotNil(t, merged.Child("b"))
	require.NotNil(t, merged.Command())
}

func TestNode_AddChildKeepsCommandWhenIncomingHasNone(t *testing.T) {
	root := NewRoot[string]()
	require.NoError(t, root.AddChild(build(t, Literal[string]("foo").Executes(returns(1)))))
	require.NoError(t, root.AddChild(build(t, Literal[string]("foo"))))

	v, err := root.Child("foo").Command()(nil)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestNode_AddSameSubtreeTwice(t *testing.T) {
	root := NewRoot[string]()
	sub := build(t, Literal[string]("foo").Then(Literal[string]("bar")))

	require.NoError(t, root.AddChild(sub))
	require.NoError(t, root.AddChild(sub))

	require.Len(t, root.Children(), 1)
	require.Len(t, root.Child("foo").Children(), 1)
}

func TestNode_ArgumentsSortedByKey(t *testing.T) {
	root := NewRoot[string]()
	require.NoError(t, root.AddChild(build(t, Argument[string]("zeta", stubType{}))))
	require.NoError(t, root.AddChild(build(t, Literal[string]("lit"))))
	require.NoError(t, root.AddChild(build(t, Argument[string]("alpha", stubType{}))))

	var names []string
	for _, n := range root.Arguments() {
		names = append(names, n.Name())
	}
	require.Equal(t, []string{"alpha", "zeta"}, names)
	require.Len(t, root.Literals(), 1)
	require.Equal(t, "lit", root.Children()[1].Name())
}

func TestNode_RelevantNodes(t *testing.T) {
	root := NewRoot[string]()
	require.NoError(t, root.AddChild(build(t, Literal[string]("foo"))))
	require.NoError(t, root.AddChild(build(t, Argument[string]("word", stubType{}))))

	r := NewStringReader("foo bar")
	relevant := root.RelevantNodes(r)
	require.Len(t, relevant, 1)
	require.Equal(t, "foo", relevant[0].Name())
	require.Equal(t, 0, r.Cursor())

	relevant = root.RelevantNodes(NewStringReader("food"))
	require.Len(t, relevant, 1)
	require.Equal(t, KindArgument, relevant[0].Kind())
}

func TestNode_CanUse(t *testing.T) {
	open := build(t, Literal[string]("open"))
	require.True(t, open.CanUse("anyone"))

	level := 0
	gated := build(t, Literal[string]("gated").Requires(func(string) bool { return level > 1 }))
	require.False(t, gated.CanUse("anyone"))
	level = 2
	require.True(t, gated.CanUse("anyone"))
}

func TestNode_Texts(t *testing.T) {
	lit := build(t, Literal[string]("foo"))
	arg := build(t, Argument[string]("n", intType{}))

	require.Equal(t, "foo", lit.UsageText())
	require.Equal(t, "<n>", arg.UsageText())
	require.Equal(t, "foo", lit.SortedKey())
	require.Equal(t, "<n>", arg.SortedKey())
	require.Equal(t, "<literal foo>", lit.String())
	require.Equal(t, "<argument n>", arg.String())
	require.Equal(t, "<root>", NewRoot[string]().String())
}

func TestNode_IsValidInput(t *testing.T) {
	lit := build(t, Literal[string]("foo"))
	arg := build(t, Argument[string]("n", intType{}))

	require.True(t, lit.IsValidInput("foo"))
	require.True(t, lit.IsValidInput("foo bar"))
	require.False(t, lit.IsValidInput("food"))
	require.True(t, arg.IsValidInput("12"))
	require.False(t, arg.IsValidInput("12a"))
	require.False(t, arg.IsValidInput("abc"))
	require.False(t, NewRoot[string]().IsValidInput(""))
}

func TestNode_FindAmbiguities(t *testing.T) {
	root := NewRoot[string]()
	require.NoError(t, root.AddChild(build(t, Literal[string]("foo").
		Then(Argument[string]("a", intType{examples: []string{"1", "2"}})).
		Then(Argument[string]("b", intType{examples: []string{"3"}})))))
	require.NoError(t, root.AddChild(build(t, Literal[string]("bar"))))

	type pair struct{ child, sibling string }
	found := map[pair][]string{}
	root.FindAmbiguities(func(_, child, sibling *Node[string], inputs []string) {
		found[pair{child.Name(), sibling.Name()}] = inputs
	})

	require.Equal(t, map[pair][]string{
		{"a", "b"}: {"1", "2"},
		{"b", "a"}: {"3"},
	}, found)
}
