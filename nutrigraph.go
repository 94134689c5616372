package nutrigraph

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/engine"
	"github.com/nutrigraph/nutrigraph/pkg/graph"
	"github.com/nutrigraph/nutrigraph/pkg/ports"
)

// Workflow is the high-level entry point: a compiled graph bound to an
// executor, optional persistence, and observability hooks.
type Workflow struct {
	name     string
	graph    *graph.Graph
	store    ports.RunStore
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxSteps int
}

// Option defines a functional option for configuring a Workflow.
type Option func(*Workflow)

// WithLogger sets a structured logger for the workflow and its executor.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithStore configures run persistence. Without a store, Execute still
// returns the run record but nothing is saved.
func WithStore(store ports.RunStore) Option {
	return func(w *Workflow) {
		w.store = store
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workflow) {
		w.hooks = hooks
	}
}

// WithMaxSteps sets the per-run step budget.
func WithMaxSteps(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.maxSteps = n
		}
	}
}

// New binds a compiled graph to a named workflow.
func New(name string, g *graph.Graph, opts ...Option) *Workflow {
	w := &Workflow{
		name:     name,
		graph:    g,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSteps: engine.DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("workflow", name)
	return w
}

// Name returns the workflow name.
func (w *Workflow) Name() string {
	return w.name
}

// Graph returns the compiled graph for introspection and visualization.
func (w *Workflow) Graph() *graph.Graph {
	return w.graph
}

// Invoke runs the workflow against the initial state and returns the final
// state. See engine.Executor.Invoke for the failure contract.
func (w *Workflow) Invoke(ctx context.Context, initial domain.State) (domain.State, error) {
	exec := engine.New(
		engine.WithMaxSteps(w.maxSteps),
		engine.WithLogger(w.logger),
		engine.WithHooks(w.hooks),
	)
	return exec.Invoke(ctx, w.graph, initial)
}

// Execute runs the workflow and returns a Run record carrying the visited
// path, timings, and outcome. The record is persisted when a store is
// configured, including failed runs, so diagnostics survive the request.
// The returned error is the execution error, if any; the Run is always
// non-nil.
func (w *Workflow) Execute(ctx context.Context, runID string, initial domain.State) (*domain.Run, error) {
	run := &domain.Run{
		ID:        runID,
		Workflow:  w.name,
		StartedAt: time.Now().UTC(),
	}

	// Chain the path trace onto any user hooks.
	hooks := w.hooks
	userEnter := hooks.OnStepEnter
	hooks.OnStepEnter = func(ctx context.Context, ev *domain.StepEvent) {
		run.Path = append(run.Path, ev.Step)
		if userEnter != nil {
			userEnter(ctx, ev)
		}
	}

	exec := engine.New(
		engine.WithMaxSteps(w.maxSteps),
		engine.WithLogger(w.logger),
		engine.WithHooks(hooks),
	)

	final, err := exec.Invoke(ctx, w.graph, initial)
	run.FinishedAt = time.Now().UTC()

	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
		w.logger.Error("run failed", "run", runID, "err", err)
	} else {
		run.Status = domain.RunCompleted
		run.Final = final
		w.logger.Info("run completed", "run", runID, "steps", len(run.Path), "duration", run.Duration())
	}

	if w.store != nil {
		if saveErr := w.store.Save(ctx, run); saveErr != nil {
			w.logger.Error("failed to persist run", "run", runID, "err", saveErr)
			if err == nil {
				err = saveErr
			}
		}
	}

	return run, err
}
