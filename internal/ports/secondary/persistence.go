// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Persistence keys.
const (
	// AgentsKey holds the canonical roster as a JSON array.
	AgentsKey = "agents"
	// BackupKey holds the raw blob as it was before the first legacy migration.
	// It is written at most once and never overwritten.
	BackupKey = "agents_backup_pre_migration"
)

// KeyValueStore defines the secondary port for the persistence medium.
type KeyValueStore interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
