package sqlite_test

import (
	"context"
	"testing"

	"github.com/BobBjorklund/progressTracker/internal/adapters/sqlite"
)

func TestKVStore_GetMissing(t *testing.T) {
	store := sqlite.NewKVStore(setupTestDB(t))

	value, found, err := store.Get(context.Background(), "agents")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found || value != "" {
		t.Errorf("Get(missing) = %q, %v; want empty, false", value, found)
	}
}

func TestKVStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := sqlite.NewKVStore(setupTestDB(t))

	if err := store.Set(ctx, "agents", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, found, err := store.Get(ctx, "agents")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != `[{"id":"a"}]` {
		t.Errorf("Get = %q, %v", value, found)
	}
}

func TestKVStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	seedValue(t, database, "agents", "old")
	store := sqlite.NewKVStore(database)

	if err := store.Set(ctx, "agents", "new"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, _ := store.Get(ctx, "agents")
	if value != "new" {
		t.Errorf("value = %q, want new", value)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestKVStore_EmptyValueIsFound(t *testing.T) {
	ctx := context.Background()
	store := sqlite.NewKVStore(setupTestDB(t))

	if err := store.Set(ctx, "k", ""); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_, found, err := store.Get(ctx, "k")
	if err != nil || !found {
		t.Errorf("empty value should be found: found=%v err=%v", found, err)
	}
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	seedValue(t, database, "agents", "[]")
	seedValue(t, database, "agents_backup_pre_migration", "legacy")
	store := sqlite.NewKVStore(database)

	if err := store.Delete(ctx, "agents"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "agents"); found {
		t.Error("agents should be gone")
	}
	if _, found, _ := store.Get(ctx, "agents_backup_pre_migration"); !found {
		t.Error("other keys must survive")
	}
	if err := store.Delete(ctx, "agents"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}
