package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

func TestRouter_ClassifiesLabels(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"github label", "github_agent", LabelGitHubAgent},
		{"chat label", "chat_agent", LabelChatAgent},
		{"mixed case with whitespace", "  GitHub_Agent\n", LabelGitHubAgent},
		{"out-of-set reply falls back", "banana", LabelChatAgent},
		{"empty reply falls back", "", LabelChatAgent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(&stubLLM{replies: []string{tt.reply}})
			st := state.State{Messages: []state.Message{state.User("show my repos")}}
			assert.Equal(t, tt.want, router.Route(testCtx(), st))
		})
	}
}

func TestRouter_ClassificationErrorFallsBack(t *testing.T) {
	router := NewRouter(&stubLLM{err: errors.New("llm down")})
	st := state.State{Messages: []state.Message{state.User("hello")}}
	assert.Equal(t, LabelChatAgent, router.Route(testCtx(), st))
}

func TestRouter_EmptyConversationFallsBack(t *testing.T) {
	client := &stubLLM{}
	router := NewRouter(client)

	assert.Equal(t, LabelChatAgent, router.Route(testCtx(), state.State{}))
	// No message to classify means no completion call.
	assert.Empty(t, client.reqs)
}

func TestRouter_SendsLastUserMessage(t *testing.T) {
	client := &stubLLM{replies: []string{"github_agent"}}
	router := NewRouter(client)

	st := state.State{Messages: []state.Message{
		state.User("hi"),
		state.Assistant("hello!"),
		state.User("list my repositories"),
	}}
	router.Route(testCtx(), st)

	require.Len(t, client.reqs, 1)
	req := client.reqs[0]
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "list my repositories", req.Messages[0].Content)
	assert.Contains(t, req.SystemPrompt, "routing assistant")
}
