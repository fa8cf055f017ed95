package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gpa-tracker/pkg/fsutils"
)

// JSONStore implements BlobStore using one file per key.
// Keys are sanitized into file names, so the file for "gpa-courses"
// is <BasePath>/gpa-courses.json.
type JSONStore struct {
	// BasePath is the directory where the blob files are stored.
	BasePath string
}

// NewJSONStore creates a new JSONStore instance.
// It ensures the base storage directory exists.
func NewJSONStore(basePath string) (*JSONStore, error) {
	if err := fsutils.CreateDir(basePath); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", basePath, err)
	}
	return &JSONStore{BasePath: basePath}, nil
}

// GetBasePath returns the base path of the JSON store.
func (js *JSONStore) GetBasePath() string {
	return js.BasePath
}

// PathFor returns the file that holds key.
func (js *JSONStore) PathFor(key string) string {
	return filepath.Join(js.BasePath, fsutils.SanitizeFilename(key)+".json")
}

// Get reads the file for key.
func (js *JSONStore) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	filePath := js.PathFor(key)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("key %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read blob file %s: %w", filePath, err)
	}
	return data, nil
}

// Put replaces the file for key atomically.
func (js *JSONStore) Put(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	filePath := js.PathFor(key)

	if err := fsutils.WriteFileAtomic(filePath, value); err != nil {
		return fmt.Errorf("failed to write blob file %s: %w", filePath, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (js *JSONStore) Close() error {
	return nil
}
