package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// Summarizer condenses a conversation into a few sentences. The session
// manager runs it at save time so resumed threads carry a summary of what
// came before.
type Summarizer struct {
	llm llm.Client
}

// NewSummarizer creates a summarizer backed by the given completion client.
func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{llm: client}
}

// Summarize returns a 2-3 sentence summary of the conversation, or an
// empty string for an empty conversation.
func (s *Summarizer) Summarize(ctx context.Context, st state.State) (string, error) {
	if st.Len() == 0 {
		return "", nil
	}

	contents := make([]string, len(st.Messages))
	for i, m := range st.Messages {
		contents[i] = m.Content
	}

	prompt := fmt.Sprintf(
		"You are a helpful assistant. Summarize the following conversation in a concise manner:\n%s\nSummarize in 2-3 sentences.",
		strings.Join(contents, "\n"))

	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize conversation: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}
