package graph

import (
	"sort"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// Graph is a compiled, immutable workflow definition.
// It may be shared and read by many concurrent runs.
type Graph struct {
	entry string
	steps map[string]domain.Step
	edges map[string]Edge
}

// Entry returns the name of the step the entry edge points to.
func (g *Graph) Entry() string {
	return g.entry
}

// Step looks up a registered step by name.
func (g *Graph) Step(name string) (domain.Step, bool) {
	s, ok := g.steps[name]
	return s, ok
}

// Edge returns the outgoing edge specification for a step.
// The second return is false for terminal steps.
func (g *Graph) Edge(from string) (Edge, bool) {
	e, ok := g.edges[from]
	if !ok {
		return Edge{}, false
	}
	return cloneEdge(e), true
}

// StepNames returns all registered step names in deterministic order.
func (g *Graph) StepNames() []string {
	names := make([]string, 0, len(g.steps))
	for name := range g.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns the full edge set in deterministic order, including
// conditional branch maps. This is the introspection surface used by
// visualization tools.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, cloneEdge(e))
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].From < edges[j].From })
	return edges
}

// Terminal reports whether a step ends the run when reached.
func (g *Graph) Terminal(name string) bool {
	_, ok := g.edges[name]
	return !ok
}
