package storage

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore defines the key-value persistence the course store writes through to.
// Values are opaque; every Put replaces the previous value wholesale.
// This allows swapping implementations (JSON files, SQLite, memory).
type BlobStore interface {
	// Get returns the value stored under key, or an error wrapping ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
