package storage

import (
	"fmt"
	"slices"
)

// MemoryStore keeps blobs in a map. Nothing survives the process.
type MemoryStore struct {
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	v, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, ErrNotFound)
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	m.blobs[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
