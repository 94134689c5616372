package ports

import (
	"context"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// RunStore defines the interface for persisting run records.
// Persistence is optional: the engine works without a store, but the
// presentation layer needs one to re-fetch results and overlay visited
// paths on diagrams.
type RunStore interface {
	// Save persists a run record under its ID.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.Run, error)

	// Delete removes a run by ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
