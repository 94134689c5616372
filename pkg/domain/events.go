package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter     EventType = "step_enter"
	EventStepLeave     EventType = "step_leave"
	EventRouteResolved EventType = "route_resolved"
)

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Step      string    `json:"step"`
	Seq       int       `json:"seq"` // 1-based position in the run
	IsError   bool      `json:"is_error,omitempty"`
}

// RouteEvent represents a resolved conditional edge.
type RouteEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Step      string    `json:"step"`   // step the router follows
	Key       string    `json:"key"`    // key the router returned
	Target    string    `json:"target"` // step the key mapped to
}

// LifecycleHooks defines callbacks for executor observability.
// Nil callbacks are skipped; hooks run synchronously on the run's goroutine,
// so they must be fast and must not mutate the state.
type LifecycleHooks struct {
	OnStepEnter     func(context.Context, *StepEvent)
	OnStepLeave     func(context.Context, *StepEvent)
	OnRouteResolved func(context.Context, *RouteEvent)
}
