package coursestore

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by RemoveAt for a position that does not exist.
	ErrIndexOutOfRange = errors.New("course index out of range")

	// ErrPersistence matches every *PersistenceError via errors.Is.
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError reports a failed read, decode or write of the stored blob.
// After a failed write the in-memory courses are kept and may differ from
// what is stored.
type PersistenceError struct {
	Op  string // "read", "decode", "encode" or "write"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
