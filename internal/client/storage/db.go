package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/migrations"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophprofile/internal/filex"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded goose migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens the SQLite database at dsn, creating its directory if needed,
// and brings its schema up to date.
// The pool is pinned to one connection: writes are serialized and a
// ":memory:" database stays a single database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if filex.IsFileDSN(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Init opens the database and reconciles persisted state: legacy slots are
// imported into the accounts mapping and a session flag that points at no
// account is cleared. Close the returned handle to flush and release it.
func Init(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	n, err := ImportLegacy(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if n > 0 {
		logger.Info(ctx, "imported legacy accounts", "count", n)
	}

	cleared, err := RepairSession(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if cleared {
		logger.Warn(ctx, "cleared session flag without a matching account")
	}

	if err := logSummary(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func logSummary(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	keys, err := localstore.NewSQLiteRepository(db).Keys(ctx)
	if err != nil {
		return err
	}
	accs, err := accounts.NewSQLiteRepository(db).List(ctx)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "store ready", "slots", keys, "accounts", len(accs))
	return nil
}
