// Package memory provides an in-memory RunStore, suitable for tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Run
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Run),
	}
}

// Save persists the run in memory.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	copied := cloneRun(run)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[run.ID] = copied
	return nil
}

// Load retrieves a run from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so the caller cannot mutate store state by reference.
	return cloneRun(run), nil
}

// Delete removes a run.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the IDs of all stored runs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// cloneRun copies the run and its mutable members, simulating the isolation
// a serializing store provides.
func cloneRun(run *domain.Run) *domain.Run {
	copied := *run
	copied.Path = append([]string(nil), run.Path...)
	copied.Final = run.Final.Clone()
	return &copied
}
