// Package sqlite_test contains integration tests for SQLite adapters.
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup uses db.GetSchemaSQL() so tests run against the authoritative
// schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BobBjorklund/progressTracker/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// every pooled connection would otherwise get its own empty :memory: database
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedValue inserts a raw key-value pair.
func seedValue(t *testing.T, database *sql.DB, key, value string) {
	t.Helper()
	if _, err := database.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("failed to seed %s: %v", key, err)
	}
}
