package store

import "github.com/taskpad/taskpad/models"

// CollectionStore defines the persistence contract for the task collection.
// The collection is always read and written as a whole, under a fixed,
// versioned storage key, so the in-memory value and durable storage stay
// consistent by construction.
type CollectionStore interface {
	// Initialize configures the store with backend-specific settings, such
	// as the data file path and serialization format. It must be called
	// before any other store operation.
	Initialize(config map[string]string) error

	// Load reads the stored collection. It never fails: a missing, corrupt
	// or unreadable payload yields an empty collection. This is the recovery
	// path that favors availability over durability.
	Load() []models.Task

	// Save serializes the collection and durably writes it. Persistence is
	// best-effort by policy; callers may ignore the returned error, but it
	// is reported so the failure stays observable to tests and diagnostics.
	Save(tasks []models.Task) error

	// Close releases any resources held by the store, such as file locks or
	// database handles.
	Close() error
}
