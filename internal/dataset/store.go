package dataset

import (
	"sync"

	"github.com/rs/zerolog"
)

// Store holds the dataset for the current session. The dashboard works on
// exactly one dataset at a time; replacing it is atomic and readers always
// see either the old dataset or the new one, never a partial state.
type Store struct {
	logger zerolog.Logger

	mu      sync.RWMutex
	current *Dataset
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{logger: logger}
}

// Replace installs a new dataset, discarding any previous one. It returns
// the dataset that was replaced, or nil when the store was empty.
func (s *Store) Replace(ds *Dataset) *Dataset {
	s.mu.Lock()
	prev := s.current
	s.current = ds
	s.mu.Unlock()

	s.logger.Info().
		Str("dataset_id", ds.ID).
		Str("source", ds.Source).
		Int("records", ds.Len()).
		Int("dropped_rows", ds.DroppedRows).
		Msg("dataset replaced")
	return prev
}

// Current returns the active dataset, or ErrNoDataset when nothing has been
// loaded yet. The returned dataset is shared; callers must treat it as
// read-only.
func (s *Store) Current() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// Clear removes the active dataset. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	cleared := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if cleared {
		s.logger.Info().Msg("dataset cleared")
	}
}
