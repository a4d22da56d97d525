package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "profile.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"goose_db_version", "slots", "accounts"} {
		require.True(t, tableExists(t, db, table), "expected table %s", table)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
}

func TestOpen_StatePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "profile.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO slots(key, value) VALUES ('check', 'ok')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var got string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key='check'`).Scan(&got))
	require.Equal(t, "ok", got)
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing-dir", "x", "profile.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestOpen_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Open(context.Background(), filepath.Join(blocker, "profile.db"))
	require.Error(t, err)
}

func TestInit_InMemory(t *testing.T) {
	db, err := Init(context.Background(), ":memory:", logging.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "accounts"))
}
