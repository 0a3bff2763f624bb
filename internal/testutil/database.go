package testutil

import (
	"database/sql"
	"testing"

	"grillhouse/internal/config"
	"grillhouse/internal/infrastructure/sqlite"
)

// SetupTestDB opens a private in-memory database with the full schema and
// seed data applied. Each call returns an independent database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.NewConnection(config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
