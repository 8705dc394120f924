// Package database wraps the SQLite store backing StayKit's saved
// configurations.
//
// It owns connection setup (WAL mode, busy timeout, foreign keys,
// single-writer pool), file permissions, a health probe, and the
// embedded schema migration runner. Migration files live in the
// top-level migrations directory and are compiled into the binary via
// embed; each carries an .up.sql and a .down.sql, named with a
// YYYYMMDD_HHMMSS version prefix.
//
// Typical startup sequence:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil { ... }
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil { ... }
//
// Schema changes roll forward only in production; MigrateDown exists
// for development and tests.
package database
