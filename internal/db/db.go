// Package db owns the SQLite connection and schema for the tracker's key-value store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file inside the data directory.
const FileName = "tracker.db"

// Open opens (creating if needed) the database in dataDir and brings its schema up to date.
func Open(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	database, err := sql.Open("sqlite3", Path(dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// single writer; avoids SQLITE_BUSY between pooled connections
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Path returns the database file path for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}
