package agent

import (
	"fmt"

	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// ChatAgent answers general conversation with the full message history as
// context. It always produces exactly one assistant message: completion
// failures become an apologetic assistant reply rather than a node error,
// so the turn still yields a response the session can show and persist.
type ChatAgent struct {
	llm llm.Client
}

// NewChatAgent creates a chat agent backed by the given completion client.
// A nil client defers to the client on the execution context.
func NewChatAgent(client llm.Client) *ChatAgent {
	return &ChatAgent{llm: client}
}

// Respond implements RespondFunc.
func (a *ChatAgent) Respond(ctx chatgraph.Context, st state.State) (state.State, error) {
	resp, err := pickClient(ctx, a.llm).Complete(ctx, llm.CompletionRequest{
		Messages: toLLMMessages(st.Messages),
	})
	if err != nil {
		ctx.Logger().Error("chat completion failed", "error", err)
		return state.Delta(state.Assistant(fmt.Sprintf("⚠️ Failed to generate chat response: %v", err))), nil
	}
	return state.Delta(state.Assistant(resp.Content)), nil
}

// toLLMMessages converts conversation messages to the completion wire shape.
// Tool-authored messages are presented as user turns since the completion
// API's tool role requires call IDs we do not track.
func toLLMMessages(msgs []state.Message) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Role == state.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
