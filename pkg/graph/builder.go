package graph

import (
	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

const (
	// Start is the pseudo-node the entry edge leaves from.
	Start = "__start__"
	// End is the pseudo-node that explicitly terminates a run.
	End = "__end__"
)

// Edge is an outgoing transition specification for one step.
// Either To is set (unconditional) or Router and Branches are set
// (conditional). Each step has at most one Edge.
type Edge struct {
	From     string
	To       string
	Router   domain.Router
	Branches map[string]string
}

// Conditional reports whether the edge is resolved through a router.
func (e Edge) Conditional() bool {
	return e.Router != nil
}

// Builder assembles a workflow definition before execution.
// It is not safe for concurrent use; the Graph produced by Compile is.
type Builder struct {
	steps map[string]domain.Step
	edges map[string]Edge
	entry string
}

// New creates an empty graph builder.
func New() *Builder {
	return &Builder{
		steps: make(map[string]domain.Step),
		edges: make(map[string]Edge),
	}
}

// AddStep registers a named step.
// Fails with DuplicateStepError if the name is already registered, and with
// UnknownStepError if the name collides with a pseudo-node or is empty.
func (b *Builder) AddStep(name string, step domain.Step) error {
	if name == "" || name == Start || name == End {
		return &domain.UnknownStepError{Name: name}
	}
	if _, ok := b.steps[name]; ok {
		return &domain.DuplicateStepError{Name: name}
	}
	b.steps[name] = step
	return nil
}

// AddEdge registers an unconditional transition from one step to another.
// AddEdge(Start, name) designates the entry step. The target may be End.
func (b *Builder) AddEdge(from, to string) error {
	if from == Start {
		if b.entry != "" {
			return &domain.DuplicateEdgeError{From: Start}
		}
		if _, ok := b.steps[to]; !ok {
			return &domain.UnknownStepError{Name: to}
		}
		b.entry = to
		return nil
	}
	if _, ok := b.steps[from]; !ok {
		return &domain.UnknownStepError{Name: from}
	}
	if to != End {
		if _, ok := b.steps[to]; !ok {
			return &domain.UnknownStepError{Name: to}
		}
	}
	if _, ok := b.edges[from]; ok {
		return &domain.DuplicateEdgeError{From: from}
	}
	b.edges[from] = Edge{From: from, To: to}
	return nil
}

// AddConditionalEdge registers a transition resolved at run time: after
// executing the step named from, router(state) is evaluated and its result
// looked up in branches to find the next step. Branch targets may be End.
func (b *Builder) AddConditionalEdge(from string, router domain.Router, branches map[string]string) error {
	if _, ok := b.steps[from]; !ok {
		return &domain.UnknownStepError{Name: from}
	}
	if router == nil {
		return &domain.UnknownStepError{Name: from + " (nil router)"}
	}
	for _, target := range branches {
		if target == End {
			continue
		}
		if _, ok := b.steps[target]; !ok {
			return &domain.UnknownStepError{Name: target}
		}
	}
	if _, ok := b.edges[from]; ok {
		return &domain.DuplicateEdgeError{From: from}
	}
	copied := make(map[string]string, len(branches))
	for k, v := range branches {
		copied[k] = v
	}
	b.edges[from] = Edge{From: from, Router: router, Branches: copied}
	return nil
}

// Compile validates the definition and freezes it into an executable Graph.
// It fails with UnreachableStepError if any registered step cannot be
// reached from Start, and with NoTerminalError if no reachable step is
// terminal. Compiling the same builder twice yields equivalent graphs.
func (b *Builder) Compile() (*Graph, error) {
	if err := validate(b); err != nil {
		return nil, err
	}

	steps := make(map[string]domain.Step, len(b.steps))
	for name, step := range b.steps {
		steps[name] = step
	}
	edges := make(map[string]Edge, len(b.edges))
	for from, e := range b.edges {
		edges[from] = cloneEdge(e)
	}

	return &Graph{
		entry: b.entry,
		steps: steps,
		edges: edges,
	}, nil
}

func cloneEdge(e Edge) Edge {
	if e.Branches == nil {
		return e
	}
	branches := make(map[string]string, len(e.Branches))
	for k, v := range e.Branches {
		branches[k] = v
	}
	e.Branches = branches
	return e
}
