package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// runStoreConformance exercises the Store contract against any backend.
func runStoreConformance(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("load missing thread", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.Load("never-saved")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("thread-1", sampleState())))

		got, err := store.Load("thread-1")
		require.NoError(t, err)
		assert.Equal(t, "thread-1", got.ThreadID)
		assert.Equal(t, sampleState(), got.State())
	})

	t.Run("save replaces previous snapshot", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("thread-1", sampleState())))

		longer := sampleState().Append(state.User("and my PRs?"))
		require.NoError(t, store.Save(New("thread-1", longer)))

		got, err := store.Load("thread-1")
		require.NoError(t, err)
		assert.Equal(t, longer.Len(), len(got.Messages))
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("thread-1", sampleState())))
		require.NoError(t, store.Delete("thread-1"))

		_, err := store.Load("thread-1")
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing thread is not an error.
		require.NoError(t, store.Delete("thread-1"))
	})

	t.Run("threads sorted", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("zeta", sampleState())))
		require.NoError(t, store.Save(New("alpha", sampleState())))

		ids, err := store.Threads()
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta"}, ids)
	})

	t.Run("rejects invalid thread id", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		err := store.Save(New("../escape", sampleState()))
		require.ErrorIs(t, err, ErrInvalidThreadID)
	})

	t.Run("closed store errors", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Close())

		require.ErrorIs(t, store.Save(New("t", sampleState())), ErrStoreClosed)
		_, err := store.Load("t")
		require.ErrorIs(t, err, ErrStoreClosed)
	})
}
