package agent

import (
	"strings"

	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

const routePrompt = "You are a routing assistant. Classify the user's message as either:\n" +
	"- 'github_agent': if it is about repositories, pull requests, GitHub-related tasks\n" +
	"- 'chat_agent': for anything else (general conversation, non-GitHub questions)\n" +
	"Respond with only the label: 'github_agent' or 'chat_agent'."

// Router classifies the latest user message into a route label.
//
// Classification is total: any failure (LLM error, out-of-set reply, empty
// conversation) resolves to LabelChatAgent, so the router never strands a
// graph run.
type Router struct {
	llm llm.Client
}

// NewRouter creates a router backed by the given completion client. A nil
// client defers to the client on the execution context.
func NewRouter(client llm.Client) *Router {
	return &Router{llm: client}
}

// Route implements chatgraph.RouterFunc for state.State.
func (r *Router) Route(ctx chatgraph.Context, st state.State) string {
	userMsg, ok := st.LastUserMessage()
	if !ok {
		return LabelChatAgent
	}

	resp, err := pickClient(ctx, r.llm).Complete(ctx, llm.CompletionRequest{
		SystemPrompt: routePrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg.Content},
		},
	})
	if err != nil {
		ctx.Logger().Warn("routing classification failed, defaulting to chat agent",
			"error", err)
		return LabelChatAgent
	}

	label := strings.ToLower(strings.TrimSpace(resp.Content))
	if label != LabelChatAgent && label != LabelGitHubAgent {
		ctx.Logger().Warn("router returned unrecognized label, defaulting to chat agent",
			"label", label)
		return LabelChatAgent
	}
	return label
}
