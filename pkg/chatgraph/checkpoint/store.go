package checkpoint

import "errors"

// Store persists conversation checkpoints keyed by thread ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a checkpoint, replacing any previous snapshot for the
	// same thread.
	Save(cp *Checkpoint) error

	// Load retrieves the checkpoint for a thread.
	// Returns ErrNotFound if the thread has never been saved.
	Load(threadID string) (*Checkpoint, error)

	// Delete removes a thread's checkpoint.
	// Returns nil if the thread doesn't exist.
	Delete(threadID string) error

	// Threads returns the IDs of all saved threads, sorted.
	Threads() ([]string, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for checkpoint operations.
var (
	// ErrNotFound indicates no checkpoint exists for the thread.
	ErrNotFound = errors.New("checkpoint not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("checkpoint store closed")

	// ErrInvalidThreadID indicates a thread ID unusable as a storage key.
	ErrInvalidThreadID = errors.New("invalid thread id")

	// ErrUnsupportedVersion indicates a checkpoint written by a newer
	// schema than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported checkpoint version")
)

// validThreadID rejects IDs that are empty or would escape a flat keyspace
// (path separators, relative path elements).
func validThreadID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	for _, r := range id {
		if r == '/' || r == '\\' {
			return false
		}
	}
	return true
}
