package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/taskpad/taskpad/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "tasks.v1.json" // versioned storage key as a file name
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileCollectionStore persists the collection in a single data file. It
// supports JSON, YAML and TOML formats, uses file-level locking, and writes
// atomically via a temp file plus rename, with a SHA-256 checksum sidecar to
// detect torn or tampered data.
type FileCollectionStore struct {
	filePath string
	flk      *flock.Flock
	format   string
}

// NewFileCollectionStore creates a new instance of FileCollectionStore.
// It does not configure the store; Initialize must be called separately.
func NewFileCollectionStore() *FileCollectionStore {
	return &FileCollectionStore{}
}

// Initialize configures the FileCollectionStore. It expects a 'dataFile' key
// in the config map specifying the path to the data file, defaulting to
// 'tasks.v1.json' in the current working directory, and an optional
// 'dataFileFormat' key (json, yaml or toml).
func (s *FileCollectionStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// If filePath was the default and format is not JSON, adjust the default
	// extension. Callers providing a full path own its extension.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// flock uses the file path itself for locking.
	s.flk = flock.New(s.filePath)
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// Load reads the stored collection. Any fault — missing file, failed lock,
// checksum mismatch, unparseable payload — yields an empty collection
// instead of an error. Records from an older schema fail decoding and are
// dropped the same way.
func (s *FileCollectionStore) Load() []models.Task {
	if err := s.flk.Lock(); err != nil {
		return []models.Task{}
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return []models.Task{}
	}
	if len(data) == 0 {
		return []models.Task{}
	}

	// Verify the checksum sidecar when present. Data written before
	// checksums existed is still accepted; the next save creates one.
	if expected, err := os.ReadFile(s.filePath + checksumSuffix); err == nil {
		if strings.TrimSpace(string(expected)) != calculateChecksum(data) {
			return []models.Task{}
		}
	}

	var doc taskDocument
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &doc)
	case formatYAML:
		err = yaml.Unmarshal(data, &doc)
	case formatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return []models.Task{}
	}
	if err != nil {
		return []models.Task{}
	}

	return decodeTasks(doc)
}

// Save serializes the collection and writes it atomically: data and checksum
// go to temp files first, then both are renamed into place.
func (s *FileCollectionStore) Save(tasks []models.Task) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for save: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc := encodeTasks(tasks)

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(doc, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(doc); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		// The data file is updated but the checksum is stale; the next Load
		// would reject it. Report the inconsistency rather than hide it.
		return fmt.Errorf("data file %s updated, but failed to update checksum file %s: %w", s.filePath, checksumFilePath, err)
	}

	return nil
}

// Close releases the file lock. flock.Unlock is idempotent and safe to call
// even if the lock is not currently held.
func (s *FileCollectionStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
