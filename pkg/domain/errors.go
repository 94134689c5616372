package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// DuplicateStepError indicates a step name was registered twice.
type DuplicateStepError struct {
	Name string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("step %q is already registered", e.Name)
}

// UnknownStepError indicates an edge references a step that was never registered.
type UnknownStepError struct {
	Name string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step %q", e.Name)
}

// DuplicateEdgeError indicates a step already has an outgoing edge.
// Every non-terminal step carries exactly one outgoing edge specification,
// unconditional or conditional.
type DuplicateEdgeError struct {
	From string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("step %q already has an outgoing edge", e.From)
}

// UnreachableStepError indicates registered steps that no path from the
// start pseudo-node can reach.
type UnreachableStepError struct {
	Names []string
}

func (e *UnreachableStepError) Error() string {
	names := append([]string(nil), e.Names...)
	sort.Strings(names)
	return fmt.Sprintf("steps unreachable from start: %s", strings.Join(names, ", "))
}

// NoTerminalError indicates the graph has no path from the start pseudo-node
// to a terminal step.
type NoTerminalError struct{}

func (e *NoTerminalError) Error() string {
	return "no path from start reaches a terminal step"
}

// RoutingError indicates a router returned a key absent from its branch map.
type RoutingError struct {
	Step     string
	Key      string
	Branches []string
}

func (e *RoutingError) Error() string {
	branches := append([]string(nil), e.Branches...)
	sort.Strings(branches)
	return fmt.Sprintf("router after step %q returned unmapped key %q (branches: %s)",
		e.Step, e.Key, strings.Join(branches, ", "))
}

// StepBudgetExceededError indicates a run executed more steps than the
// configured budget allows. This is the cycle guard: acyclic graphs never
// hit it with a sane budget.
type StepBudgetExceededError struct {
	Budget   int
	LastStep string
}

func (e *StepBudgetExceededError) Error() string {
	return fmt.Sprintf("step budget of %d exceeded at step %q (possible cycle)", e.Budget, e.LastStep)
}

// StepExecutionError wraps a failure raised by a step or router function,
// annotated with the failing step's name and the state snapshot at failure
// time for diagnostics.
type StepExecutionError struct {
	Step  string
	State State
	Err   error
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}
