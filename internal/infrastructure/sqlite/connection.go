package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"grillhouse/internal/config"
)

// NewConnection opens the database, applies the schema and seeds initial
// data. The pool is capped at a single connection: SQLite has one writer,
// and the cap also makes ":memory:" databases safe to share in tests.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if err := ApplyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	if err := Seed(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	return db, nil
}
