// Package storage bootstraps the local SQLite database: it opens the file,
// applies the embedded goose migrations and reconciles persisted state left
// by older layouts.
//
// Typical use:
//
//	db, err := storage.Init(ctx, cfg.DatabasePath, logger)
//	if err != nil { ... }
//	defer db.Close()
package storage
