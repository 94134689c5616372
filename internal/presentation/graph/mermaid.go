// Package graph renders compiled workflow topologies as Mermaid diagrams.
package graph

import (
	"fmt"
	"sort"
	"strings"

	wf "github.com/nutrigraph/nutrigraph/pkg/graph"
)

// Overlay contains dynamic run data to visualize on the diagram.
type Overlay struct {
	VisitedSteps []string
	CurrentStep  string
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a compiled
// graph. Shapes carry semantics:
//   - start/end pseudo-nodes: ((Circle))
//   - terminal steps: ([Stadium])
//   - other steps: [Rectangle]
//
// Conditional branches render as labeled arrows. Overlay styles mark the
// visited path and the current (or failing) step of a run.
func GenerateMermaid(g *wf.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sb.WriteString("    __start__((\"start\"))\n")

	endUsed := false
	for _, name := range g.StepNames() {
		safeID := sanitizeMermaidID(name)
		opener, closer := "[", "]"
		if g.Terminal(name) {
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, name, closer))
	}

	sb.WriteString(fmt.Sprintf("    __start__ --> %s\n", sanitizeMermaidID(g.Entry())))

	for _, edge := range g.Edges() {
		safeFrom := sanitizeMermaidID(edge.From)

		if !edge.Conditional() {
			if edge.To == wf.End {
				endUsed = true
				sb.WriteString(fmt.Sprintf("    %s --> __end__\n", safeFrom))
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeFrom, sanitizeMermaidID(edge.To)))
			continue
		}

		keys := make([]string, 0, len(edge.Branches))
		for key := range edge.Branches {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			target := edge.Branches[key]
			safeKey := strings.ReplaceAll(key, "\"", "'")
			if target == wf.End {
				endUsed = true
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> __end__\n", safeFrom, safeKey))
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeFrom, safeKey, sanitizeMermaidID(target)))
		}
	}

	if endUsed {
		sb.WriteString("    __end__((\"end\"))\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedSteps {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentStep != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
