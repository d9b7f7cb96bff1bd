package bunstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-auth-client/adapters/bunstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestStore(t *testing.T) *bunstore.Store {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := bunstore.New(bun.NewDB(db, sqlitedialect.New()))
	require.NoError(t, store.Init(context.Background()))
	require.NoError(t, store.Clear(context.Background()))
	return store
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "user-42", "tok-abc"))

	userID, token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "tok-abc", token)
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "user-1", "tok-1"))
	require.NoError(t, store.Save(ctx, "user-2", "tok-2"))

	userID, token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-2", userID)
	assert.Equal(t, "tok-2", token)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Load(context.Background())
	assert.ErrorIs(t, err, bunstore.ErrNoSnapshot)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "user-1", "tok-1"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx)) // clearing empty is fine

	_, _, err := store.Load(ctx)
	assert.ErrorIs(t, err, bunstore.ErrNoSnapshot)
}
