// Package checkpoint provides persistent conversation storage keyed by
// thread ID, so a session can be resumed across process restarts.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// Version is the current checkpoint schema version.
const Version = 1

// Checkpoint is one persisted conversation snapshot. Save always replaces
// the previous snapshot for the thread; there is no history of snapshots.
type Checkpoint struct {
	Version   int             `json:"version"`
	ThreadID  string          `json:"thread_id"`
	Messages  []state.Message `json:"messages"`
	Summary   string          `json:"summary,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New builds a checkpoint for the given thread from conversation state.
func New(threadID string, st state.State) *Checkpoint {
	return &Checkpoint{
		Version:   Version,
		ThreadID:  threadID,
		Messages:  st.Messages,
		Summary:   st.Summary,
		UpdatedAt: time.Now().UTC(),
	}
}

// State reconstructs conversation state from the checkpoint.
func (c *Checkpoint) State() state.State {
	return state.State{Messages: c.Messages, Summary: c.Summary}
}

// Marshal encodes the checkpoint as JSON.
func (c *Checkpoint) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a checkpoint and rejects schema versions newer than
// this package understands.
func Unmarshal(data []byte) (*Checkpoint, error) {
	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	if c.Version > Version {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, c.Version)
	}
	return &c, nil
}
