// Package metrics exposes Prometheus instrumentation for workflow runs.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
)

// Metrics holds the workflow collectors, bound to their own registry so
// tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	stepsExecuted *prometheus.CounterVec
}

// New creates the collectors and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrigraph",
			Name:      "runs_total",
			Help:      "Workflow runs by workflow name and outcome.",
		}, []string{"workflow", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutrigraph",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of workflow runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"workflow"}),
		stepsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrigraph",
			Name:      "steps_executed_total",
			Help:      "Steps executed, by workflow and step name.",
		}, []string{"workflow", "step"}),
	}

	m.registry.MustRegister(m.runsTotal, m.runDuration, m.stepsExecuted)
	return m
}

// ObserveRun records the outcome of a finished run.
func (m *Metrics) ObserveRun(run *domain.Run) {
	m.runsTotal.WithLabelValues(run.Workflow, string(run.Status)).Inc()
	m.runDuration.WithLabelValues(run.Workflow).Observe(run.Duration().Seconds())
}

// Hooks returns lifecycle hooks that count executed steps for a workflow.
func (m *Metrics) Hooks(workflow string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepLeave: func(ctx context.Context, ev *domain.StepEvent) {
			m.stepsExecuted.WithLabelValues(workflow, ev.Step).Inc()
		},
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Timeout: 10 * time.Second,
	})
}
