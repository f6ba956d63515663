package kvstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "state.json"))
}

func TestFileStore_GetMissing(t *testing.T) {
	store := newTestFileStore(t)

	value, ok, err := store.Get("missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestFileStore_SetAndGet(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, store.Set("state", `{"tasks":[]}`))

	value, ok, err := store.Get("state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"tasks":[]}`, value)

	_, err = os.Stat(store.Path())
	require.NoError(t, err)
	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, NewFileStore(path).Set("k", "v"))

	value, ok, err := NewFileStore(path).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestFileStore_Remove(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))

	require.NoError(t, store.Remove("a"))
	require.NoError(t, store.Remove("never-set"))

	_, ok, err := store.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
	value, ok, err := store.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestFileStore_CorruptFile(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, _, err := store.Get("state")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestFileStore_UnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// A regular file where a directory is expected makes every call fail.
	store := NewFileStore(filepath.Join(blocker, "state.json"))

	err := store.Set("k", "v")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	_, _, err = store.Get("k")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			assert.NoError(t, NewFileStore(path).Set(key, key))
		}(i)
	}
	wg.Wait()

	store := NewFileStore(path)
	for i := 0; i < 20; i++ {
		key := string(rune('a' + i))
		value, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.True(t, ok, "key %s lost", key)
		assert.Equal(t, key, value)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", "v"))
	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	snap := store.Snapshot()
	snap["k"] = "changed"
	value, _, _ = store.Get("k")
	assert.Equal(t, "v", value)

	require.NoError(t, store.Remove("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
