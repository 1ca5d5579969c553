package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLContentStore {
	t.Helper()
	ctx := context.Background()
	store, err := OpenSQLContentStore(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Migrate(ctx)
	require.NoError(t, err)
	return store
}

func TestSQLContentStore_Contract(t *testing.T) {
	runContentStoreContract(t, func(t *testing.T) ContentStore {
		return newSQLiteStore(t)
	})
}

func TestSQLContentStore_MigrateIsIncremental(t *testing.T) {
	store := newSQLiteStore(t)

	n, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "second run should apply nothing")
}

func TestSQLContentStore_DropAllThenMigrate(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.SeedData(ctx))

	require.NoError(t, store.DropAll(ctx))
	_, err := store.GetPrograms(ctx)
	assert.Error(t, err, "programs table should be gone")

	files, err := collectUpFiles("sqlite")
	require.NoError(t, err)
	n, err := store.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(files), n)

	programs, err := store.GetPrograms(ctx)
	require.NoError(t, err)
	assert.Empty(t, programs)
}

func TestSQLContentStore_Ping(t *testing.T) {
	store := newSQLiteStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, ":memory:", sqlitePath("sqlite::memory:"))
	assert.Equal(t, "data/site.db", sqlitePath("sqlite://data/site.db"))
	assert.Equal(t, "file:site.db?cache=shared", sqlitePath("file:site.db?cache=shared"))
}
