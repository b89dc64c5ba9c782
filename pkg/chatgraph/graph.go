package chatgraph

import (
	"fmt"
	"strings"
	"sync"
)

// conditionalEdge pairs a router with its label->node route table.
// A nil routes table means the router returns node IDs directly.
type conditionalEdge[S any] struct {
	router RouterFunc[S]
	routes map[string]string
}

// Graph is a mutable builder for creating execution graphs.
// Use NewGraph to create a new graph, then chain AddNode, AddEdge,
// AddConditionalEdges, and SetEntry calls to define the workflow.
//
// Graph is NOT thread-safe during building. Use a single goroutine
// to construct the graph, then call Compile() to create an immutable
// CompiledGraph that can be safely shared.
//
// Example:
//
//	graph := chatgraph.NewGraph[state.State]().
//	    AddNode("route", chatgraph.Passthrough[state.State]).
//	    AddNode("chat_agent", chatNode).
//	    AddNode("github_agent", githubNode).
//	    AddConditionalEdges("route", router, map[string]string{
//	        "chat_agent":   "chat_agent",
//	        "github_agent": "github_agent",
//	    }).
//	    AddEdge("chat_agent", chatgraph.END).
//	    AddEdge("github_agent", chatgraph.END).
//	    SetEntry("route")
//
//	compiled, err := graph.Compile()
type Graph[S any] struct {
	mu               sync.RWMutex
	nodes            map[string]NodeFunc[S]
	edges            map[string][]string
	conditionalEdges map[string]conditionalEdge[S]
	entryPoint       string
}

// NewGraph creates a new graph builder for state type S.
// The type parameter S defines the state that flows through the graph.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:            make(map[string]NodeFunc[S]),
		edges:            make(map[string][]string),
		conditionalEdges: make(map[string]conditionalEdge[S]),
	}
}

// AddNode adds a named node to the graph.
// Returns the graph for method chaining.
//
// Panics if:
//   - id is empty
//   - id is the reserved word "END" or "__end__" (case-insensitive)
//   - id contains whitespace (space, tab, newline)
//   - fn is nil
//   - id already exists in the graph
func (g *Graph[S]) AddNode(id string, fn NodeFunc[S]) *Graph[S] {
	if id == "" {
		panic("chatgraph: node ID cannot be empty")
	}

	// Check reserved words (case-insensitive)
	idLower := strings.ToLower(id)
	if idLower == "end" || idLower == "__end__" {
		panic("chatgraph: node ID cannot be reserved word 'END'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("chatgraph: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("chatgraph: node function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("chatgraph: duplicate node ID: %s", id))
	}

	g.nodes[id] = fn
	return g
}

// AddEdge adds an unconditional edge from one node to another.
// The target can be a node ID or chatgraph.END.
// Returns the graph for method chaining.
//
// Edge validation happens at Compile() time, not here.
// This allows edges to be added in any order.
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges[from] = append(g.edges[from], to)
	return g
}

// AddConditionalEdges attaches a router to a node together with the route
// table mapping each label the router may return to a node ID (or END).
// Returns the graph for method chaining.
//
// The route table is the closed set of valid decisions: at Compile() time
// every table target must resolve to a registered node, so an unroutable
// label is a construction error, not a runtime surprise.
//
// routes may be nil, in which case the router's return value is used as a
// node ID directly.
//
// A node can have either simple edges or conditional edges, not both.
// If both are present, the conditional edges take precedence.
func (g *Graph[S]) AddConditionalEdges(from string, router RouterFunc[S], routes map[string]string) *Graph[S] {
	if router == nil {
		panic("chatgraph: router function cannot be nil")
	}
	if routes != nil && len(routes) == 0 {
		panic("chatgraph: route table cannot be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.conditionalEdges[from] = conditionalEdge[S]{router: router, routes: routes}
	return g
}

// SetEntry designates the entry point node.
// This must be called before Compile().
// Returns the graph for method chaining.
//
// Entry point validation happens at Compile() time.
func (g *Graph[S]) SetEntry(id string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entryPoint = id
	return g
}
