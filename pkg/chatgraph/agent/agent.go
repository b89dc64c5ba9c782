// Package agent implements the conversational agents that run as graph
// nodes: an LLM-backed router that picks a branch, a general chat agent,
// and a GitHub tool agent.
//
// Agents return partial states carrying only the messages they produced.
// The Node adapter merges those deltas into the prior state, so agents
// never have to copy or re-emit conversation history.
package agent

import (
	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// Route labels returned by the router. Each corresponds to an agent node.
const (
	LabelChatAgent   = "chat_agent"
	LabelGitHubAgent = "github_agent"
)

// RespondFunc produces a partial state (usually a single assistant message)
// in response to the conversation so far.
type RespondFunc func(ctx chatgraph.Context, st state.State) (state.State, error)

// Node adapts a RespondFunc into a graph node. The returned node merges the
// agent's delta into the incoming state, concatenating messages.
func Node(fn RespondFunc) chatgraph.NodeFunc[state.State] {
	return func(ctx chatgraph.Context, st state.State) (state.State, error) {
		delta, err := fn(ctx, st)
		if err != nil {
			return st, err
		}
		return state.Merge(st, delta), nil
	}
}

// pickClient prefers the agent's own client and falls back to the one
// carried on the execution context.
func pickClient(ctx chatgraph.Context, own llm.Client) llm.Client {
	if own != nil {
		return own
	}
	return ctx.LLM()
}
