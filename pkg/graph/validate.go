package graph

import (
	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// validate crawls the definition from the entry step and checks the two
// compile-time invariants: every registered step is reachable, and at least
// one reachable step terminates the flow. Silent misrouting is the main
// real failure mode of hand-wired graphs, so this runs on every Compile.
func validate(b *Builder) error {
	if b.entry == "" {
		names := make([]string, 0, len(b.steps))
		for name := range b.steps {
			names = append(names, name)
		}
		return &domain.UnreachableStepError{Names: names}
	}

	visited := make(map[string]bool, len(b.steps))
	queue := []string{b.entry}
	terminalFound := false

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		edge, ok := b.edges[current]
		if !ok {
			// Sink step: no outgoing edge.
			terminalFound = true
			continue
		}

		if edge.Conditional() {
			for _, target := range edge.Branches {
				if target == End {
					terminalFound = true
					continue
				}
				if !visited[target] {
					queue = append(queue, target)
				}
			}
			continue
		}

		if edge.To == End {
			terminalFound = true
			continue
		}
		if !visited[edge.To] {
			queue = append(queue, edge.To)
		}
	}

	var unreachable []string
	for name := range b.steps {
		if !visited[name] {
			unreachable = append(unreachable, name)
		}
	}
	if len(unreachable) > 0 {
		return &domain.UnreachableStepError{Names: unreachable}
	}

	if !terminalFound {
		return &domain.NoTerminalError{}
	}

	return nil
}
