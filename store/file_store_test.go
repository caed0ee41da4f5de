package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskpad/taskpad/models"
)

func setupTestStore(t *testing.T, format string) (*FileCollectionStore, string) {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "tasks.v1."+format)

	store := NewFileCollectionStore()
	config := map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": format,
	}
	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store, filePath
}

func sampleTasks(t *testing.T) []models.Task {
	t.Helper()

	// Millisecond precision matches the wire format, so the round trip is
	// exact.
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	milk := models.NewTask(uuid.NewString(), "Buy milk", "2%, 1 gallon", base)
	bread := models.NewTask(uuid.NewString(), "Buy bread", "whole grain", base.Add(5*time.Millisecond))
	bread.Completed = true
	bread.UpdatedAt = base.Add(9 * time.Millisecond)
	return []models.Task{milk, bread}
}

func TestFileCollectionStore_RoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			store, _ := setupTestStore(t, format)
			tasks := sampleTasks(t)

			if err := store.Save(tasks); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got := store.Load()
			if !reflect.DeepEqual(got, tasks) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tasks)
			}
		})
	}
}

func TestFileCollectionStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	store, _ := setupTestStore(t, "json")

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestFileCollectionStore_LoadCorruptPayloadReturnsEmpty(t *testing.T) {
	store, filePath := setupTestStore(t, "json")

	if err := os.WriteFile(filePath, []byte("{not json at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("corrupt payload must yield an empty collection, got %d tasks", len(got))
	}
}

func TestFileCollectionStore_LoadChecksumMismatchReturnsEmpty(t *testing.T) {
	store, filePath := setupTestStore(t, "json")
	if err := store.Save(sampleTasks(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Tamper with the data file after a valid save; the sidecar no longer
	// matches.
	if err := os.WriteFile(filePath, []byte(`{"tasks":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("checksum mismatch must yield an empty collection, got %d tasks", len(got))
	}
}

func TestFileCollectionStore_OldSchemaRecordsAreDropped(t *testing.T) {
	store, filePath := setupTestStore(t, "json")

	// A hypothetical pre-v1 payload with RFC3339 timestamps instead of
	// epoch millis fails decoding and takes the corrupt-data recovery path.
	old := `{"tasks":[{"id":"1","name":"Buy milk","description":"2%","completed":false,` +
		`"createdAt":"2024-03-01T12:00:00Z","updatedAt":"2024-03-01T12:00:00Z"}]}`
	if err := os.WriteFile(filePath, []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if len(got) != 0 {
		t.Errorf("old-schema payload must be dropped, got %d tasks", len(got))
	}
}

func TestFileCollectionStore_SaveOverwritesPreviousState(t *testing.T) {
	store, _ := setupTestStore(t, "json")
	tasks := sampleTasks(t)

	if err := store.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(tasks[:1]); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got := store.Load()
	if len(got) != 1 || got[0].Name != "Buy milk" {
		t.Errorf("expected only the first task after overwrite, got %+v", got)
	}
}

func TestFileCollectionStore_InitializeRejectsUnknownFormat(t *testing.T) {
	store := NewFileCollectionStore()
	err := store.Initialize(map[string]string{
		"dataFile":       filepath.Join(t.TempDir(), "tasks.v1.xml"),
		"dataFileFormat": "xml",
	})
	if err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
