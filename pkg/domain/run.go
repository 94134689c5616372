package domain

import "time"

// RunStatus describes the outcome of a run.
type RunStatus string

const (
	// RunCompleted means the run reached a terminal step.
	RunCompleted RunStatus = "completed"
	// RunFailed means the run aborted with an error.
	RunFailed RunStatus = "failed"
)

// Run is the record of one execution of a compiled graph against one
// initial state. It is created on invocation and, when a store is
// configured, persisted so presentation layers can re-fetch results and
// overlay the visited path on diagrams.
type Run struct {
	ID         string    `json:"id"`
	Workflow   string    `json:"workflow"`
	Path       []string  `json:"path"`
	Final      State     `json:"final,omitempty"`
	Status     RunStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns the wall-clock time the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
