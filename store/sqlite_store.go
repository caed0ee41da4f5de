package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskpad/taskpad/models"
	_ "modernc.org/sqlite"
)

// SQLiteCollectionStore persists the collection in a SQLite database used as
// a plain key/value store: the serialized collection lives in a single row
// keyed by StorageKey. SQLite gives durable, transactional writes without a
// server process.
type SQLiteCollectionStore struct {
	db *sql.DB
}

// NewSQLiteCollectionStore creates a new instance of SQLiteCollectionStore.
// It does not open the database; Initialize must be called separately.
func NewSQLiteCollectionStore() *SQLiteCollectionStore {
	return &SQLiteCollectionStore{}
}

// Initialize opens (or creates) the database at the 'dataFile' config path,
// defaulting to 'tasks.db', and ensures the kv schema exists. The special
// path ':memory:' opens an in-memory database.
func (s *SQLiteCollectionStore) Initialize(config map[string]string) error {
	dbPath := config[dataFileKey]
	if dbPath == "" {
		dbPath = "tasks.db"
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	s.db = db
	return nil
}

// Load reads the collection stored under StorageKey. A missing row, a
// failed query or an unparseable value yields an empty collection.
func (s *SQLiteCollectionStore) Load() []models.Task {
	if s.db == nil {
		return []models.Task{}
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, StorageKey).Scan(&value)
	if err != nil {
		// sql.ErrNoRows means nothing stored yet; any other failure means
		// the store is unavailable. Both take the same recovery path.
		return []models.Task{}
	}

	var doc taskDocument
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return []models.Task{}
	}
	return decodeTasks(doc)
}

// Save upserts the serialized collection under StorageKey.
func (s *SQLiteCollectionStore) Save(tasks []models.Task) error {
	if s.db == nil {
		return fmt.Errorf("store is not initialized")
	}

	value, err := json.Marshal(encodeTasks(tasks))
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		StorageKey, string(value),
	)
	if err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteCollectionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
