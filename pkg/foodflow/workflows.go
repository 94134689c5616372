package foodflow

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/graph"
)

// Workflow names.
const (
	WorkflowAnalysis  = "analysis"
	WorkflowScreening = "screening"
)

type config struct {
	logger  *slog.Logger
	steps   map[string]domain.Step
	routers map[string]domain.Router
}

// Option customizes a workflow definition before it is compiled.
type Option func(*config)

// WithLogger sets the logger the stub steps report through.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStep replaces a stub step with integrator-supplied behavior.
// The name must be one of the Step* constants.
func WithStep(name string, step domain.Step) Option {
	return func(c *config) {
		c.steps[name] = step
	}
}

// WithRouter replaces a routing predicate with integrator-supplied behavior.
// The name must be one of the Router* constants.
func WithRouter(name string, router domain.Router) Option {
	return func(c *config) {
		c.routers[name] = router
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		steps:   make(map[string]domain.Step),
		routers: make(map[string]domain.Router),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) step(name string, fallback func(*slog.Logger) domain.StepFunc) domain.Step {
	if s, ok := c.steps[name]; ok {
		return s
	}
	return fallback(c.logger)
}

func (c *config) router(name string, fallback domain.Router) domain.Router {
	if r, ok := c.routers[name]; ok {
		return r
	}
	return fallback
}

// Analysis builds the food-image analysis workflow: capture, validation
// (invalid input ends the run), vision processing, a medical branch that
// reconverges at quality assurance, then output.
func Analysis(opts ...Option) (*graph.Graph, error) {
	c := newConfig(opts...)
	b := graph.New()

	if err := addCommonSpine(b, c); err != nil {
		return nil, err
	}
	if err := b.AddEdge(StepQualityCheck, StepOutput); err != nil {
		return nil, err
	}
	if err := b.AddEdge(StepOutput, graph.End); err != nil {
		return nil, err
	}

	return b.Compile()
}

// Screening builds the near-identical screening variant: identical spine,
// but the quality gate is wired as a genuine fork. A failing check routes
// to a terminal rejected step, bypassing the output stage entirely.
func Screening(opts ...Option) (*graph.Graph, error) {
	c := newConfig(opts...)
	b := graph.New()

	if err := addCommonSpine(b, c); err != nil {
		return nil, err
	}
	if err := b.AddStep(StepRejected, c.step(StepRejected, rejectedStep)); err != nil {
		return nil, err
	}
	if err := b.AddConditionalEdge(StepQualityCheck, c.router(RouterQuality, routeQualityCheck), map[string]string{
		BranchQualityPassed: StepOutput,
		BranchQualityFailed: StepRejected,
	}); err != nil {
		return nil, err
	}
	if err := b.AddEdge(StepOutput, graph.End); err != nil {
		return nil, err
	}
	// StepRejected has no outgoing edge: it is the rejected terminal.

	return b.Compile()
}

// addCommonSpine wires the steps and edges both workflows share: everything
// from capture through quality assurance.
func addCommonSpine(b *graph.Builder, c *config) error {
	steps := []struct {
		name     string
		fallback func(*slog.Logger) domain.StepFunc
	}{
		{StepUserImageUnit, userImageUnitStep},
		{StepValidateInput, validateInputStep},
		{StepImageProcess, imageProcessingStep},
		{StepMedicalSection, medicalSectionStep},
		{StepPersonalized, personalizedReportStep},
		{StepValidated, validatedResponseStep},
		{StepQualityCheck, qualityAssuranceStep},
		{StepOutput, outputStep},
	}
	for _, s := range steps {
		if err := b.AddStep(s.name, c.step(s.name, s.fallback)); err != nil {
			return err
		}
	}

	if err := b.AddEdge(graph.Start, StepUserImageUnit); err != nil {
		return err
	}
	if err := b.AddEdge(StepUserImageUnit, StepValidateInput); err != nil {
		return err
	}
	if err := b.AddConditionalEdge(StepValidateInput, c.router(RouterValidation, routeAfterValidation), map[string]string{
		BranchValidPath:    StepImageProcess,
		BranchInvalidInput: graph.End,
	}); err != nil {
		return err
	}
	if err := b.AddEdge(StepImageProcess, StepMedicalSection); err != nil {
		return err
	}
	if err := b.AddConditionalEdge(StepMedicalSection, c.router(RouterMedical, routeMedicalReportCheck), map[string]string{
		BranchMedicalFound:  StepPersonalized,
		BranchNoMedicalData: StepValidated,
	}); err != nil {
		return err
	}
	if err := b.AddEdge(StepPersonalized, StepQualityCheck); err != nil {
		return err
	}
	if err := b.AddEdge(StepValidated, StepQualityCheck); err != nil {
		return err
	}
	return nil
}

// Build compiles a workflow by name.
func Build(name string, opts ...Option) (*graph.Graph, error) {
	switch name {
	case WorkflowAnalysis:
		return Analysis(opts...)
	case WorkflowScreening:
		return Screening(opts...)
	default:
		return nil, fmt.Errorf("unknown workflow %q", name)
	}
}

// Names lists the available workflow names.
func Names() []string {
	return []string{WorkflowAnalysis, WorkflowScreening}
}
