package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_kv_table",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_updated_at_to_kv",
		Up:      migrationV2,
	},
}

// CurrentVersion is the schema version after all migrations.
func CurrentVersion() int {
	return migrations[len(migrations)-1].Version
}

// RunMigrations applies every migration newer than the recorded schema version.
// Each migration runs in its own transaction together with its version row.
func RunMigrations(database *sql.DB) error {
	if err := createVersionTable(database); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the initial key-value table.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// migrationV2 adds updated_at to kv.
func migrationV2(tx *sql.Tx) error {
	exists, err := columnExists(tx, "kv", "updated_at")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	// SQLite rejects non-constant defaults in ADD COLUMN
	if _, err := tx.Exec("ALTER TABLE kv ADD COLUMN updated_at DATETIME"); err != nil {
		return err
	}
	_, err = tx.Exec("UPDATE kv SET updated_at = CURRENT_TIMESTAMP WHERE updated_at IS NULL")
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
