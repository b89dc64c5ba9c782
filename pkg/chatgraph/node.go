package chatgraph

// END is the terminal node identifier.
// Use this as an edge target to indicate the graph should terminate.
const END = "__end__"

// NodeFunc is the signature for all node functions.
// Nodes receive the execution context and current state,
// and return the updated state (or the same state) and any error.
//
// The state parameter is passed by value. Nodes should modify and return
// a new state value, not rely on pointer mutation.
type NodeFunc[S any] func(ctx Context, state S) (S, error)

// RouterFunc selects the label of the next branch based on state.
// It is attached to a node with AddConditionalEdges, which also supplies
// the table mapping labels to node IDs.
//
// The router must return a label present in the route table (or a node
// ID / END directly when no table was given). Routers are expected to
// substitute their configured default label on any classification
// failure rather than returning out-of-set values.
type RouterFunc[S any] func(ctx Context, state S) string

// Passthrough is a no-op node. It is the conventional entry point for a
// graph whose first step is a conditional dispatch: the node does nothing
// and its conditional edges pick the real branch.
func Passthrough[S any](_ Context, state S) (S, error) {
	return state, nil
}
