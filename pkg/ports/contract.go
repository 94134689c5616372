package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// RunRunStoreContract is a reusable test suite that verifies an adapter
// complies with the RunStore semantics. Adapter test packages call it with
// a fresh store instance.
func RunRunStoreContract(t *testing.T, store RunStore) {
	t.Helper()
	ctx := context.Background()

	run := &domain.Run{
		ID:        "run-1",
		Workflow:  "analysis",
		Path:      []string{"user_image_unit", "validate_input"},
		Final:     domain.State{"input_valid": true},
		Status:    domain.RunCompleted,
		StartedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		if !errors.Is(err, domain.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("Save_Load", func(t *testing.T) {
		if err := store.Save(ctx, run); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		loaded, err := store.Load(ctx, run.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Workflow != run.Workflow {
			t.Errorf("workflow mismatch: got %q, want %q", loaded.Workflow, run.Workflow)
		}
		if len(loaded.Path) != len(run.Path) {
			t.Fatalf("path length mismatch: got %d, want %d", len(loaded.Path), len(run.Path))
		}
		if !loaded.Final.Bool("input_valid") {
			t.Error("expected final state to carry input_valid=true")
		}
	})

	t.Run("Load_Isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, run.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		loaded.Final["mutated"] = true

		again, err := store.Load(ctx, run.ID)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if again.Final.Has("mutated") {
			t.Error("store leaked a mutable reference to its internal state")
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == run.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in listing, got %v", run.ID, ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, run.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		_, err := store.Load(ctx, run.ID)
		if !errors.Is(err, domain.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound after delete, got %v", err)
		}
	})
}
