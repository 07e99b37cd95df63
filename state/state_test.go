package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreOperations(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), ".draugr", "state.yml")}

	t.Run("missing file is empty", func(t *testing.T) {
		state, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, state)

		_, ok, err := store.GetItem("token")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.SetItem("token", "abc"))
		require.NoError(t, store.SetItem("user", `{"name":"alice"}`))

		val, ok, err := store.GetItem("user")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"name":"alice"}`, val)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.RemoveItem("token"))
		require.NoError(t, store.RemoveItem("never-set"))

		_, ok, err := store.GetItem("token")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("snapshot is sorted", func(t *testing.T) {
		require.NoError(t, store.SetItem("cart", EmptyCart))
		entries, err := store.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, []Entry{{"cart", EmptyCart}, {"user", `{"name":"alice"}`}}, entries)
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path, []byte("{not yaml"), 0o600))
		_, _, err := store.GetItem("cart")
		assert.Error(t, err)
	})
}

func TestNewFileStoreDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	store, err := NewFileStore("")
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, ".draugr", "state.yml"), store.Path)
}

func TestResetLocalStorage(t *testing.T) {
	for name, store := range map[string]Store{
		"memory": NewMemoryStore(),
		"file":   &FileStore{Path: filepath.Join(t.TempDir(), "state.yml")},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetItem(KeyToken, "secret"))
			require.NoError(t, store.SetItem(KeyUser, `{"id":7}`))
			require.NoError(t, store.SetItem(KeyCart, `{"items":[{"id":1,"qty":2}]}`))
			require.NoError(t, store.SetItem("theme", "dark"))

			assert.True(t, ResetLocalStorage(store))

			_, ok, _ := store.GetItem(KeyToken)
			assert.False(t, ok)
			_, ok, _ = store.GetItem(KeyUser)
			assert.False(t, ok)
			cart, ok, _ := store.GetItem(KeyCart)
			assert.True(t, ok)
			assert.Equal(t, `{"items":[]}`, cart)
			theme, _, _ := store.GetItem("theme")
			assert.Equal(t, "dark", theme, "unrelated keys are kept")
		})
	}
}

func TestResetLocalStorageEmptyStore(t *testing.T) {
	store := NewMemoryStore()
	assert.True(t, ResetLocalStorage(store))
	entries, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []Entry{{KeyCart, EmptyCart}}, entries)
}

func TestResetLocalStorageIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	assert.True(t, ResetLocalStorage(store))
	first, _ := store.Snapshot()
	assert.True(t, ResetLocalStorage(store))
	second, _ := store.Snapshot()
	assert.Equal(t, first, second)
}

// failingStore fails the named operation on the named key.
type failingStore struct {
	*MemoryStore
	failOp  string
	failKey string
	calls   []string
}

func (s *failingStore) RemoveItem(key string) error {
	s.calls = append(s.calls, "remove "+key)
	if s.failOp == "remove" && s.failKey == key {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.RemoveItem(key)
}

func (s *failingStore) SetItem(key, value string) error {
	s.calls = append(s.calls, "set "+key)
	if s.failOp == "set" && s.failKey == key {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.SetItem(key, value)
}

func TestResetLocalStorageStopsAtFirstFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failOp: "remove", failKey: KeyUser}
	require.NoError(t, store.MemoryStore.SetItem(KeyToken, "secret"))
	require.NoError(t, store.MemoryStore.SetItem(KeyUser, "alice"))

	assert.False(t, ResetLocalStorage(store))
	assert.Equal(t, []string{"remove token", "remove user"}, store.calls)

	_, ok, _ := store.GetItem(KeyToken)
	assert.False(t, ok, "steps before the failure stay applied")
	_, ok, _ = store.GetItem(KeyCart)
	assert.False(t, ok, "steps after the failure are not attempted")
}

func TestResetLocalStorageFailingCartWrite(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failOp: "set", failKey: KeyCart}
	assert.False(t, ResetLocalStorage(store))
	assert.Equal(t, []string{"remove token", "remove user", "set cart"}, store.calls)
}
