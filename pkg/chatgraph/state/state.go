// Package state defines the conversation state threaded through the graph.
//
// State is a value type. Nodes receive it by value and return an updated
// value; they never mutate prior messages in place. Partial updates from
// agent nodes are combined with Merge, which concatenates message lists and
// overwrites scalar fields.
package state

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a conversation. Messages are immutable once
// appended; ordering within a State is significant.
type Message struct {
	Role     Role              `json:"role"`
	Content  string            `json:"content"`
	ToolMeta map[string]string `json:"tool_metadata,omitempty"`
}

// User builds a user-authored message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant builds an assistant-authored message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// State is the shared conversation state.
//
// Messages is append-only within a graph invocation: nodes may add to the
// end but must not delete or reorder what came before. Summary is a scalar
// field carrying the most recent save-time conversation summary.
type State struct {
	Messages []Message `json:"messages"`
	Summary  string    `json:"summary,omitempty"`
}

// Append returns a copy of s with msg appended. The returned state does not
// share writable tail capacity with s, so appending to one never clobbers
// the other.
func (s State) Append(msg Message) State {
	msgs := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(msgs, s.Messages)
	s.Messages = append(msgs, msg)
	return s
}

// Delta builds a partial state carrying only the given messages, for use
// with Merge.
func Delta(msgs ...Message) State {
	return State{Messages: msgs}
}

// LastMessage returns the most recent message, if any.
func (s State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LastUserMessage returns the most recent user-authored message, if any.
func (s State) LastUserMessage() (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// Len returns the number of messages.
func (s State) Len() int {
	return len(s.Messages)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// Merge combines a node's partial output into the prior state.
//
// List-valued fields are concatenated: delta.Messages is appended after
// prior.Messages. Scalar fields are overwritten only when the delta carries
// a non-zero value, so a node that never touches Summary cannot erase it.
func Merge(prior, delta State) State {
	out := State{
		Messages: make([]Message, 0, len(prior.Messages)+len(delta.Messages)),
		Summary:  prior.Summary,
	}
	out.Messages = append(out.Messages, prior.Messages...)
	out.Messages = append(out.Messages, delta.Messages...)
	if delta.Summary != "" {
		out.Summary = delta.Summary
	}
	return out
}
