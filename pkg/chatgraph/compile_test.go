package chatgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_NoEntryPoint(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END)

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestCompile_EntryNotFound(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("missing")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorContains(t, err, "missing")
}

func TestCompile_EdgeTargetNotFound(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", "ghost").
		SetEntry("a")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrNodeNotFound)
	assert.ErrorContains(t, err, "ghost")
}

func TestCompile_EdgeSourceNotFound(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		AddEdge("ghost", "a").
		SetEntry("a")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrNodeNotFound)
	assert.ErrorContains(t, err, "edge source 'ghost'")
}

func TestCompile_RouteTableTargetNotFound(t *testing.T) {
	router := func(_ Context, _ Counter) string { return "left" }
	g := NewGraph[Counter]().
		AddNode("route", Passthrough[Counter]).
		AddNode("left", increment).
		AddConditionalEdges("route", router, map[string]string{
			"left":  "left",
			"right": "right", // never registered
		}).
		AddEdge("left", END).
		SetEntry("route")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrRouteNotFound)
	assert.ErrorContains(t, err, "label 'right' maps to 'right'")
}

func TestCompile_RouteTableMayTargetEND(t *testing.T) {
	router := func(_ Context, _ Counter) string { return "done" }
	g := NewGraph[Counter]().
		AddNode("route", Passthrough[Counter]).
		AddNode("work", increment).
		AddConditionalEdges("route", router, map[string]string{
			"work": "work",
			"done": END,
		}).
		AddEdge("work", END).
		SetEntry("route")

	_, err := g.Compile()
	require.NoError(t, err)
}

func TestCompile_NoPathToEnd(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", "a").
		SetEntry("a")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrNoPathToEnd)
}

func TestCompile_JoinsMultipleErrors(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", "ghost")

	_, err := g.Compile()
	require.ErrorIs(t, err, ErrNoEntryPoint)
	require.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCompile_GraphMutationDoesNotAffectCompiled(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	// Mutating the builder afterwards must not change the compiled graph.
	g.AddNode("b", increment).AddEdge("b", END)

	assert.False(t, compiled.HasNode("b"))
	assert.ElementsMatch(t, []string{"a"}, compiled.NodeIDs())
}

func TestCompile_ExposesTopology(t *testing.T) {
	router := func(_ Context, _ Counter) string { return "left" }
	g := NewGraph[Counter]().
		AddNode("route", Passthrough[Counter]).
		AddNode("left", increment).
		AddNode("right", increment).
		AddConditionalEdges("route", router, map[string]string{
			"left":  "left",
			"right": "right",
		}).
		AddEdge("left", END).
		AddEdge("right", END).
		SetEntry("route")

	compiled, err := g.Compile()
	require.NoError(t, err)

	assert.True(t, compiled.IsConditional("route"))
	assert.False(t, compiled.IsConditional("left"))
	assert.Equal(t, map[string]string{"left": "left", "right": "right"}, compiled.Routes("route"))
	assert.Equal(t, []string{END}, compiled.Successors("left"))
}
