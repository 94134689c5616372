package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// IsInteractive reports whether the given file descriptor is a terminal.
// Non-interactive output (pipes, CI) gets plain markdown instead of the
// glamour-rendered version.
func IsInteractive(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// StatusBadge returns a colored status marker for interactive terminals.
func StatusBadge(status domain.RunStatus) string {
	p := termenv.ColorProfile()
	switch status {
	case domain.RunCompleted:
		return termenv.String("✔ " + string(status)).Foreground(p.Color("#22c55e")).String()
	case domain.RunFailed:
		return termenv.String("✘ " + string(status)).Foreground(p.Color("#ef4444")).String()
	default:
		return string(status)
	}
}

// ReportMarkdown builds the markdown summary of a finished run.
func ReportMarkdown(run *domain.Run) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Nutrition Analysis — %s\n\n", run.Workflow)
	fmt.Fprintf(&sb, "- **Run**: `%s`\n", run.ID)
	fmt.Fprintf(&sb, "- **Status**: %s\n", run.Status)
	fmt.Fprintf(&sb, "- **Duration**: %s\n", run.Duration().Round(0))
	if len(run.Path) > 0 {
		fmt.Fprintf(&sb, "- **Path**: %s\n", strings.Join(run.Path, " → "))
	}

	if run.Error != "" {
		fmt.Fprintf(&sb, "\n## Error\n\n```\n%s\n```\n", run.Error)
		return sb.String()
	}

	if output := run.Final.Map("output"); output != nil {
		if score, ok := output["quality_score"].(float64); ok {
			fmt.Fprintf(&sb, "- **Quality score**: %.0f%%\n", score*100)
		}
		if pretty, err := json.MarshalIndent(output, "", "  "); err == nil {
			fmt.Fprintf(&sb, "\n## Output\n\n```json\n%s\n```\n", pretty)
		}
	}

	return sb.String()
}
