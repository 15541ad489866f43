package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates an in-memory SQLite database with the schema
// applied. The pool is pinned to one connection: each in-memory
// connection is a separate database, so a second one would see no
// tables.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
