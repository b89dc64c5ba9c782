package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

func TestMemoryStore_Conformance(t *testing.T) {
	runStoreConformance(t, func(_ *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_LoadedSnapshotDoesNotAlias(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.Save(New("thread-1", sampleState())))

	first, err := store.Load("thread-1")
	require.NoError(t, err)
	first.Messages[0] = state.User("mutated")

	second, err := store.Load("thread-1")
	require.NoError(t, err)
	assert.Equal(t, "list my repos", second.Messages[0].Content)
}
