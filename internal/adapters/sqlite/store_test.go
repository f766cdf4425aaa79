package sqlite_test

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/sqlite"
	"go.trai.ch/docullim/internal/core/domain"
)

func newStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".docullim", "cache.sqlite")
	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_PutAndGet(t *testing.T) {
	store, _ := newStore(t)

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(domain.CacheEntry{Key: "k1", Text: "Adds numbers.", Model: "gpt-4", CreatedAt: created}))

	got, err = store.Get("k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.CacheKey("k1"), got.Key)
	assert.Equal(t, "Adds numbers.", got.Text)
	assert.Equal(t, "gpt-4", got.Model)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestStore_Replace(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Put(domain.CacheEntry{Key: "k", Text: "old"}))
	require.NoError(t, store.Put(domain.CacheEntry{Key: "k", Text: "new"}))

	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Put(domain.CacheEntry{Key: "k", Text: "doc"}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck // test cleanup

	got, err := reopened.Get("k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "doc", got.Text)
}

func TestStore_Reset(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Put(domain.CacheEntry{Key: "a", Text: "1"}))
	require.NoError(t, store.Put(domain.CacheEntry{Key: "b", Text: "2"}))

	require.NoError(t, store.Reset())

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_MigratesLegacyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.sqlite")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE docs (hash TEXT PRIMARY KEY, doc TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO docs (hash, doc) VALUES ('legacy', 'Old entry.')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck // test cleanup

	got, err := store.Get("legacy")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old entry.", got.Text)
	assert.Empty(t, got.Model)
	assert.True(t, got.CreatedAt.IsZero())

	require.NoError(t, store.Put(domain.CacheEntry{Key: "new", Text: "New entry.", Model: "gpt-4"}))
	got, err = store.Get("new")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", got.Model)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := domain.CacheKey(string(rune('a' + i)))
			assert.NoError(t, store.Put(domain.CacheEntry{Key: key, Text: "doc"}))
			got, err := store.Get(key)
			assert.NoError(t, err)
			assert.NotNil(t, got)
		}()
	}
	wg.Wait()

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 16, n)
}
