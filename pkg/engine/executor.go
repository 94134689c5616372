package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/graph"
)

// DefaultMaxSteps bounds the total steps a single run may execute when no
// explicit budget is configured. The demo graphs are a dozen steps deep;
// anything approaching this limit is a wiring mistake, not a workload.
const DefaultMaxSteps = 100

// Executor runs compiled graphs against initial states.
type Executor struct {
	maxSteps int
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxSteps sets the step budget for each run.
func WithMaxSteps(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithLogger sets a structured logger for step-level tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks for observability.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// New creates an Executor with the given options.
func New(opts ...Option) *Executor {
	e := &Executor{
		maxSteps: DefaultMaxSteps,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Invoke runs the graph from its entry step against the initial state and
// returns the final state.
//
// Steps execute strictly sequentially in the order the graph dictates, and
// every state mutation is visible to all subsequent steps. On failure the
// partial state is discarded: the returned state is nil and the error is a
// RoutingError, StepBudgetExceededError, or StepExecutionError annotated
// with the failing step and a snapshot of the state at failure time.
func (e *Executor) Invoke(ctx context.Context, g *graph.Graph, initial domain.State) (domain.State, error) {
	state := initial
	if state == nil {
		state = domain.NewState()
	}

	current := g.Entry()
	for seq := 1; ; seq++ {
		if seq > e.maxSteps {
			return nil, &domain.StepBudgetExceededError{Budget: e.maxSteps, LastStep: current}
		}
		if err := ctx.Err(); err != nil {
			return nil, &domain.StepExecutionError{Step: current, State: state.Clone(), Err: err}
		}

		step, ok := g.Step(current)
		if !ok {
			// Unreachable on a compiled graph; kept as a hard stop for
			// hand-constructed test doubles.
			return nil, &domain.UnknownStepError{Name: current}
		}

		e.emitStepEnter(ctx, current, seq)
		e.logger.Debug("executing step", "step", current, "seq", seq)

		next, err := step.Run(ctx, state)
		if err != nil {
			e.emitStepLeave(ctx, current, seq, true)
			return nil, &domain.StepExecutionError{Step: current, State: state.Clone(), Err: err}
		}
		if next != nil {
			state = next
		}
		e.emitStepLeave(ctx, current, seq, false)

		edge, ok := g.Edge(current)
		if !ok {
			// Sink step: the run is complete.
			return state, nil
		}

		if !edge.Conditional() {
			if edge.To == graph.End {
				return state, nil
			}
			current = edge.To
			continue
		}

		key, err := edge.Router(ctx, state)
		if err != nil {
			return nil, &domain.StepExecutionError{Step: current, State: state.Clone(), Err: err}
		}
		target, ok := edge.Branches[key]
		if !ok {
			branches := make([]string, 0, len(edge.Branches))
			for k := range edge.Branches {
				branches = append(branches, k)
			}
			return nil, &domain.RoutingError{Step: current, Key: key, Branches: branches}
		}

		e.emitRouteResolved(ctx, current, key, target)
		e.logger.Debug("route resolved", "step", current, "key", key, "target", target)

		if target == graph.End {
			return state, nil
		}
		current = target
	}
}

func (e *Executor) emitStepEnter(ctx context.Context, step string, seq int) {
	if e.hooks.OnStepEnter == nil {
		return
	}
	e.hooks.OnStepEnter(ctx, &domain.StepEvent{
		Timestamp: time.Now(),
		Type:      domain.EventStepEnter,
		Step:      step,
		Seq:       seq,
	})
}

func (e *Executor) emitStepLeave(ctx context.Context, step string, seq int, isError bool) {
	if e.hooks.OnStepLeave == nil {
		return
	}
	e.hooks.OnStepLeave(ctx, &domain.StepEvent{
		Timestamp: time.Now(),
		Type:      domain.EventStepLeave,
		Step:      step,
		Seq:       seq,
		IsError:   isError,
	})
}

func (e *Executor) emitRouteResolved(ctx context.Context, step, key, target string) {
	if e.hooks.OnRouteResolved == nil {
		return
	}
	e.hooks.OnRouteResolved(ctx, &domain.RouteEvent{
		Timestamp: time.Now(),
		Type:      domain.EventRouteResolved,
		Step:      step,
		Key:       key,
		Target:    target,
	})
}
