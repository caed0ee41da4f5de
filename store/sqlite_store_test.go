package store

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
)

func setupSQLiteStore(t *testing.T) (*SQLiteCollectionStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	store := NewSQLiteCollectionStore()
	if err := store.Initialize(map[string]string{"dataFile": dbPath}); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store, dbPath
}

func TestSQLiteCollectionStore_RoundTrip(t *testing.T) {
	store, _ := setupSQLiteStore(t)
	tasks := sampleTasks(t)

	if err := store.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load()
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tasks)
	}

	// Saving again upserts the single row rather than appending.
	if err := store.Save(tasks[:1]); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if got := store.Load(); len(got) != 1 {
		t.Errorf("expected 1 task after overwrite, got %d", len(got))
	}
}

func TestSQLiteCollectionStore_LoadFreshDatabaseReturnsEmpty(t *testing.T) {
	store, _ := setupSQLiteStore(t)

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestSQLiteCollectionStore_LoadCorruptValueReturnsEmpty(t *testing.T) {
	store, dbPath := setupSQLiteStore(t)

	// Corrupt the stored value out-of-band.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, 'not json')`, StorageKey); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("corrupt value must yield an empty collection, got %d tasks", len(got))
	}
}

func TestSQLiteCollectionStore_SaveReportsUnavailableStore(t *testing.T) {
	store, _ := setupSQLiteStore(t)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if err := store.Save(sampleTasks(t)); err == nil {
		t.Error("save against a closed store must report the failure")
	}
	if got := store.Load(); len(got) != 0 {
		t.Errorf("load against a closed store must recover to empty, got %d tasks", len(got))
	}
}
