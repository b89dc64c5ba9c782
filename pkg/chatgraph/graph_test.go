package chatgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode_PanicsOnEmptyID(t *testing.T) {
	g := NewGraph[Counter]()
	assert.PanicsWithValue(t, "chatgraph: node ID cannot be empty", func() {
		g.AddNode("", increment)
	})
}

func TestAddNode_PanicsOnReservedID(t *testing.T) {
	for _, id := range []string{"END", "end", "End", "__end__", "__END__"} {
		t.Run(id, func(t *testing.T) {
			g := NewGraph[Counter]()
			assert.PanicsWithValue(t, "chatgraph: node ID cannot be reserved word 'END'", func() {
				g.AddNode(id, increment)
			})
		})
	}
}

func TestAddNode_PanicsOnWhitespaceID(t *testing.T) {
	for _, id := range []string{"my node", "my\tnode", "my\nnode"} {
		g := NewGraph[Counter]()
		assert.PanicsWithValue(t, "chatgraph: node ID cannot contain whitespace", func() {
			g.AddNode(id, increment)
		})
	}
}

func TestAddNode_PanicsOnNilFunc(t *testing.T) {
	g := NewGraph[Counter]()
	assert.PanicsWithValue(t, "chatgraph: node function cannot be nil", func() {
		g.AddNode("step", nil)
	})
}

func TestAddNode_PanicsOnDuplicateID(t *testing.T) {
	g := NewGraph[Counter]().AddNode("step", increment)
	assert.PanicsWithValue(t, "chatgraph: duplicate node ID: step", func() {
		g.AddNode("step", increment)
	})
}

func TestAddConditionalEdges_PanicsOnNilRouter(t *testing.T) {
	g := NewGraph[Counter]().AddNode("route", Passthrough[Counter])
	assert.PanicsWithValue(t, "chatgraph: router function cannot be nil", func() {
		g.AddConditionalEdges("route", nil, map[string]string{"a": "a"})
	})
}

func TestAddConditionalEdges_PanicsOnEmptyRouteTable(t *testing.T) {
	g := NewGraph[Counter]().AddNode("route", Passthrough[Counter])
	router := func(_ Context, _ Counter) string { return "a" }
	assert.PanicsWithValue(t, "chatgraph: route table cannot be empty", func() {
		g.AddConditionalEdges("route", router, map[string]string{})
	})
}

func TestBuilderChaining(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)
	assert.Equal(t, "a", compiled.EntryPoint())
	assert.ElementsMatch(t, []string{"a", "b"}, compiled.NodeIDs())
}
