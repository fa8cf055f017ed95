package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewJSONStore(t *testing.T) {
	tempDir := t.TempDir() // Creates a temporary directory for the test
	dataPath := filepath.Join(tempDir, ".test_data")

	store, err := NewJSONStore(dataPath)
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}

	if store == nil {
		t.Fatal("NewJSONStore() returned nil store")
	}

	// Check if the base directory was created
	if _, err := os.Stat(dataPath); os.IsNotExist(err) {
		t.Errorf("NewJSONStore() did not create the base directory: %s", dataPath)
	}

	if store.GetBasePath() != dataPath {
		t.Errorf("GetBasePath() returned %q, want %q", store.GetBasePath(), dataPath)
	}
}

func TestJSONStorePutGet(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), ".test_data"))
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}

	value := []byte(`{"version":1,"courses":[]}`)
	if err := store.Put("gpa-courses", value); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	expectedFilePath := filepath.Join(store.GetBasePath(), "gpa-courses.json")
	if _, err := os.Stat(expectedFilePath); os.IsNotExist(err) {
		t.Fatalf("Put() did not create the expected file: %s", expectedFilePath)
	}

	got, err := store.Get("gpa-courses")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %s, want %s", got, value)
	}

	// Overwrite wholesale.
	if err := store.Put("gpa-courses", []byte(`[]`)); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}
	got, err = store.Get("gpa-courses")
	if err != nil {
		t.Fatalf("Get() after overwrite failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get() after overwrite = %s, want []", got)
	}
}

func TestJSONStoreGet_NotFound(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), ".test_data"))
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}

	_, err = store.Get("does-not-exist")
	if err == nil {
		t.Fatal("Get() succeeded for missing key, expected error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() returned error %q, expected an error wrapping ErrNotFound", err)
	}
}

func TestJSONStoreEmptyKey(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}
	if err := store.Put("", []byte("x")); err == nil {
		t.Error("Put() with empty key succeeded")
	}
	if _, err := store.Get(""); err == nil {
		t.Error("Get() with empty key succeeded")
	}
}

func TestJSONStorePutFailsWhenDirectoryRemoved(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "gone")
	store, err := NewJSONStore(dataPath)
	if err != nil {
		t.Fatalf("NewJSONStore() failed: %v", err)
	}
	if err := os.RemoveAll(dataPath); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if err := store.Put("gpa-courses", []byte("[]")); err == nil {
		t.Error("Put() succeeded after the storage directory was removed")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	value := []byte("abc")
	if err := store.Put("k", value); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	value[0] = 'z' // caller's slice must not alias the stored copy

	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("Get() = %q, want abc", got)
	}
}
