package domain

import "context"

// Step is a named unit of work in a workflow graph.
//
// A Step receives exclusive ownership of the current State, may mutate or
// replace it, and returns the State the executor hands to the next step.
// Steps may perform arbitrary external I/O (vision inference, medical
// parsing, nutrition lookups) but must return synchronously.
type Step interface {
	Run(ctx context.Context, state State) (State, error)
}

// StepFunc adapts a plain function to the Step interface.
type StepFunc func(ctx context.Context, state State) (State, error)

// Run implements Step.
func (f StepFunc) Run(ctx context.Context, state State) (State, error) {
	return f(ctx, state)
}

// Router selects the branch key for a conditional edge.
//
// It is evaluated against the post-step state and must return one of the
// keys declared in the edge's branch map. Routers are pure by convention:
// side effects belong in steps.
type Router func(ctx context.Context, state State) (string, error)
