package checkpoint

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps checkpoints in memory. Useful for tests and ephemeral
// sessions; contents are lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save implements Store.
func (s *MemoryStore) Save(cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if !validThreadID(cp.ThreadID) {
		return fmt.Errorf("%w: %q", ErrInvalidThreadID, cp.ThreadID)
	}

	// Store serialized so callers can't alias the saved snapshot.
	data, err := cp.Marshal()
	if err != nil {
		return err
	}
	s.data[cp.ThreadID] = data
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(threadID string) (*Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	data, ok := s.data[threadID]
	if !ok {
		return nil, ErrNotFound
	}
	return Unmarshal(data)
}

// Delete implements Store.
func (s *MemoryStore) Delete(threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.data, threadID)
	return nil
}

// Threads implements Store.
func (s *MemoryStore) Threads() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
