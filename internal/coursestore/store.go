package coursestore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"gpa-tracker/internal/gpa"
	"gpa-tracker/internal/model"
	"gpa-tracker/internal/storage"

	"github.com/google/uuid"
)

// DefaultKey is the storage key the course list is kept under.
const DefaultKey = "gpa-courses"

// Store is the ordered list of courses, written through to a BlobStore on
// every mutation. It is not safe for concurrent use.
type Store struct {
	backend storage.BlobStore
	key     string
	logger  *slog.Logger
	now     func() time.Time

	courses   []model.Course
	profileID string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for the updatedAt stamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a Store over backend and loads the persisted courses.
// A missing blob yields an empty store; an unreadable or corrupt one
// is returned as a *PersistenceError.
func Open(backend storage.BlobStore, logger *slog.Logger, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("course store requires a backend")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory courses with the persisted ones.
// On error the in-memory state is left untouched.
func (s *Store) Load() ([]model.Course, error) {
	data, err := s.backend.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("No stored courses, starting empty", "key", s.key)
			s.courses = nil
			if s.profileID == "" {
				s.profileID = uuid.NewString()
			}
			return s.All(), nil
		}
		s.logger.Error("Failed to read stored courses", "key", s.key, "error", err)
		return nil, &PersistenceError{Op: "read", Key: s.key, Err: err}
	}

	doc, err := decode(data)
	if err != nil {
		s.logger.Error("Stored courses are corrupt", "key", s.key, "error", err)
		return nil, &PersistenceError{Op: "decode", Key: s.key, Err: err}
	}
	if doc.Version < CurrentVersion {
		s.logger.Info("Read legacy course list; it will be rewritten on the next change",
			"key", s.key, "version", doc.Version, "count", len(doc.Courses))
	}

	s.courses = doc.Courses
	s.profileID = doc.ProfileID
	if s.profileID == "" {
		s.profileID = uuid.NewString()
	}
	s.logger.Debug("Loaded courses", "key", s.key, "count", len(s.courses), "profile", s.profileID)
	return s.All(), nil
}

// Add appends c and persists. Invalid courses are rejected with a
// *gpa.ValidationError before anything changes.
func (s *Store) Add(c model.Course) error {
	if problems := gpa.ValidateCourse(c); len(problems) > 0 {
		return &gpa.ValidationError{Messages: problems}
	}
	c.Name = strings.TrimSpace(c.Name)
	s.courses = append(s.courses, c)
	s.logger.Info("Added course", "name", c.Name, "credits", c.Credits, "grade", c.Grade.Token(), "index", len(s.courses)-1)
	return s.persist()
}

// RemoveAt deletes the course at index (0-based, display order) and persists.
// An index outside the list fails with ErrIndexOutOfRange and changes nothing.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.courses) {
		return fmt.Errorf("%w: index %d, have %d courses", ErrIndexOutOfRange, index, len(s.courses))
	}
	removed := s.courses[index]
	s.courses = slices.Delete(s.courses, index, index+1)
	s.logger.Info("Removed course", "name", removed.Name, "index", index)
	return s.persist()
}

// Clear removes every course and persists the empty list.
func (s *Store) Clear() error {
	count := len(s.courses)
	s.courses = nil
	s.logger.Info("Cleared courses", "removed", count)
	return s.persist()
}

// All returns a copy of the courses in display order.
func (s *Store) All() []model.Course {
	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Len returns the number of stored courses.
func (s *Store) Len() int {
	return len(s.courses)
}

// ProfileID identifies the stored course list across runs.
func (s *Store) ProfileID() string {
	return s.profileID
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) persist() error {
	data, err := encode(document{
		Version:   CurrentVersion,
		ProfileID: s.profileID,
		UpdatedAt: s.now().UTC(),
		Courses:   s.courses,
	})
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.backend.Put(s.key, data); err != nil {
		s.logger.Error("Failed to persist courses; memory and storage may now differ", "key", s.key, "error", err)
		return &PersistenceError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
