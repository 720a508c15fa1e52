package feedback

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendAndAll(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Append(Entry{Rating: 5, Comment: "helped me plan", TargetRole: "Data Analyst"}))
	require.NoError(t, store.Append(Entry{Rating: 3}))

	entries, err := store.All()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 5, entries[0].Rating)
	assert.Equal(t, "helped me plan", entries[0].Comment)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestStoreRejectsInvalidEntries(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Append(Entry{Rating: 0}))
	assert.Error(t, store.Append(Entry{Rating: 6}))
	assert.Error(t, store.Append(Entry{Rating: 4, Email: "not-an-email"}))

	entries, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreConcurrentAppends(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Append(Entry{Rating: 4}))
		}()
	}
	wg.Wait()

	entries, err := store.All()
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestAllWithNoFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	entries, err := store.All()
	require.NoError(t, err)
	assert.Nil(t, entries)
}
