package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore implements the Store interface using filesystem-based
// persistence. Results are stored in a directory structure:
// <baseDir>/mosaics/<id>/ containing record.json and mosaic.png.
//
// Thread-safety: this implementation relies on atomic file operations
// (rename) and does not require locks. Multiple goroutines can safely call
// methods concurrently.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a new filesystem-based store. The baseDir is created
// if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// resultDir returns the directory path for a given result ID.
func (fs *FSStore) resultDir(id string) string {
	return filepath.Join(fs.baseDir, "mosaics", id)
}

func (fs *FSStore) recordPath(id string) string {
	return filepath.Join(fs.resultDir(id), "record.json")
}

func (fs *FSStore) imagePath(id string) string {
	return filepath.Join(fs.resultDir(id), "mosaic.png")
}

// SaveResult atomically saves a record and its mosaic PNG using the temp
// file + rename pattern.
func (fs *FSStore) SaveResult(rec *Record, png []byte) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if rec.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}

	dir := fs.resultDir(rec.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	if err := writeFileAtomic(fs.recordPath(rec.ID), data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := writeFileAtomic(fs.imagePath(rec.ID), png); err != nil {
		return fmt.Errorf("failed to write mosaic image: %w", err)
	}

	slog.Debug("Result saved", "id", rec.ID, "dir", dir)
	return nil
}

// LoadRecord retrieves the record for the given result ID.
func (fs *FSStore) LoadRecord(id string) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("result ID cannot be empty")
	}

	data, err := os.ReadFile(fs.recordPath(id))
	if os.IsNotExist(err) {
		return nil, &NotFoundError{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to deserialize record: %w", err)
	}
	return &rec, nil
}

// LoadImage retrieves the mosaic PNG bytes for the given result ID.
func (fs *FSStore) LoadImage(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("result ID cannot be empty")
	}

	data, err := os.ReadFile(fs.imagePath(id))
	if os.IsNotExist(err) {
		return nil, &NotFoundError{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read mosaic image: %w", err)
	}
	return data, nil
}

// ListRecords returns the records of all stored results.
func (fs *FSStore) ListRecords() ([]Record, error) {
	mosaicsDir := filepath.Join(fs.baseDir, "mosaics")

	entries, err := os.ReadDir(mosaicsDir)
	if os.IsNotExist(err) {
		return []Record{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to scan results directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := fs.LoadRecord(entry.Name())
		if err != nil {
			// A directory without a readable record is stale, not fatal.
			slog.Warn("Skipping unreadable result", "id", entry.Name(), "error", err)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// DeleteResult removes the record and the mosaic image for the given ID.
func (fs *FSStore) DeleteResult(id string) error {
	if id == "" {
		return fmt.Errorf("result ID cannot be empty")
	}

	dir := fs.resultDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{ID: id}
	} else if err != nil {
		return fmt.Errorf("failed to stat result directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	slog.Debug("Result deleted", "id", id)
	return nil
}

// writeFileAtomic writes data to a temp file and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
