package localstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE slots (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, KeyAuthenticated, AuthenticatedValue))

	v, ok, err := r.GetItem(ctx, KeyAuthenticated)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestGetItem_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.GetItem(context.Background(), "absent")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestGetItem_EmptyValueIsPresent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k", ""))
	_, ok, err := r.GetItem(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSetItem_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k", "old"))
	require.NoError(t, r.SetItem(ctx, "k", "new"))

	v, _, err := r.GetItem(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "x", "1"))
	require.NoError(t, r.RemoveItem(ctx, "x"))

	_, ok, err := r.GetItem(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.RemoveItem(ctx, "x"))
}

func TestKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "b", "2"))
	require.NoError(t, r.SetItem(ctx, "a", "1"))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, r.RemoveItem(ctx, "a"))
	require.NoError(t, r.RemoveItem(ctx, "b"))
	keys, err = r.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestJSONHelpers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	type rec struct {
		Email string `json:"email"`
	}

	var got rec
	ok, err := GetJSON(ctx, r, KeyLegacyUser, &got)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, SetJSON(ctx, r, KeyLegacyUser, rec{Email: "a@b.com"}))
	raw, _, err := r.GetItem(ctx, KeyLegacyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com"}`, raw)

	ok, err = GetJSON(ctx, r, KeyLegacyUser, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", got.Email)

	require.NoError(t, r.SetItem(ctx, KeyLegacyUsers, "{not json"))
	var list []rec
	ok, err = GetJSON(ctx, r, KeyLegacyUsers, &list)
	require.True(t, ok)
	require.ErrorContains(t, err, "failed to decode slot[users]")
}

func TestErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.GetItem(ctx, "k")
	require.ErrorContains(t, err, "failed to get slot[k]")

	require.ErrorContains(t, r.SetItem(ctx, "k", "v"), "failed to set slot[k]")
	require.ErrorContains(t, r.RemoveItem(ctx, "k"), "failed to remove slot[k]")

	_, err = r.Keys(ctx)
	require.ErrorContains(t, err, "failed to list slots")
}
