package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

// Store is the single accessor for the flat-file JSON datastore. All reads and
// writes go through its FIFO mutex, so at most one read-modify-write cycle is
// in flight at a time within the process.
//
// Durability relies on the write-temp-then-rename pattern; there is no
// write-ahead log and no cross-process file locking. Running two instances
// against the same file is not supported.
type Store struct {
	path     string
	mu       *Mutex
	logger   *zap.Logger
	observer func(op string, d time.Duration)
}

// New constructs a store for the given document path.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, mu: NewMutex(), logger: logger}
}

// SetObserver installs a latency observer for load/save operations.
func (s *Store) SetObserver(fn func(op string, d time.Duration)) {
	s.observer = fn
}

// Path returns the canonical document path.
func (s *Store) Path() string {
	return s.path
}

// View runs fn with a freshly loaded state under the serializer lock.
func (s *Store) View(ctx context.Context, fn func(*State) error) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	return fn(state)
}

// Update runs fn with a freshly loaded state and persists the result, all as
// one critical section. Check-then-act sequences (conflict scan followed by an
// insert) must use a single Update call; splitting them into separate lock
// acquisitions reopens the lost-update race.
//
// If fn returns an error nothing is written and the document on disk is left
// untouched.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.save(state)
}

func (s *Store) load() (*State, error) {
	start := time.Now()
	defer s.observe("load", start)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First boot: an absent document is a valid empty state.
			return NewState(), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "read datastore")
	}

	state := &State{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCorruptStore.Code, appErrors.ErrCorruptStore.Status, "parse datastore")
	}
	if err := state.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCorruptStore.Code, appErrors.ErrCorruptStore.Status, "validate datastore")
	}
	return state, nil
}

func (s *Store) save(state *State) error {
	start := time.Now()
	defer s.observe("save", start)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "encode datastore")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "ensure datastore directory")
	}

	tmp := s.path + ".tmp"
	// A leftover temp file means a previous write crashed mid-flight.
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "remove stale temp file")
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "write temp datastore")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn("atomic rename failed, falling back to direct write",
			zap.String("path", s.path), zap.Error(err))
		if err := os.WriteFile(s.path, data, 0o644); err != nil {
			return appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, "write datastore")
		}
	}

	return nil
}

func (s *Store) observe(op string, start time.Time) {
	if s.observer != nil {
		s.observer(op, time.Since(start))
	}
}
