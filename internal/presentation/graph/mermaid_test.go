package graph_test

import (
	"strings"
	"testing"

	pres "github.com/nutrigraph/nutrigraph/internal/presentation/graph"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
	wf "github.com/nutrigraph/nutrigraph/pkg/graph"
)

func buildAnalysis(t *testing.T) *wf.Graph {
	t.Helper()
	g, err := foodflow.Analysis()
	if err != nil {
		t.Fatalf("failed to build analysis workflow: %v", err)
	}
	return g
}

func TestGenerateMermaid(t *testing.T) {
	g := buildAnalysis(t)
	out := pres.GenerateMermaid(g, nil)

	contains := []string{
		"graph TD",
		"__start__((\"start\"))",
		"__start__ --> user_image_unit",
		"user_image_unit --> validate_input",
		"validate_input -- \"valid_path\" --> image_processing",
		"validate_input -- \"invalid_input\" --> __end__",
		"medical_section -- \"medical_report_found\" --> personalized_report_generation",
		"medical_section -- \"no_medical_data\" --> validated_response",
		"output --> __end__",
		"__end__((\"end\"))",
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q\n%s", want, out)
		}
	}
}

func TestGenerateMermaid_TerminalShape(t *testing.T) {
	g, err := foodflow.Screening()
	if err != nil {
		t.Fatalf("failed to build screening workflow: %v", err)
	}
	out := pres.GenerateMermaid(g, nil)

	if !strings.Contains(out, "rejected([\"rejected\"])") {
		t.Errorf("expected terminal stadium shape for rejected step\n%s", out)
	}
	if !strings.Contains(out, "quality_assurance -- \"quality_failed\" --> rejected") {
		t.Errorf("expected quality gate branch to rejected\n%s", out)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	g := buildAnalysis(t)
	overlay := &pres.Overlay{
		VisitedSteps: []string{"user_image_unit", "validate_input", "user_image_unit"},
		CurrentStep:  "image_processing",
	}
	out := pres.GenerateMermaid(g, overlay)

	if strings.Count(out, "class user_image_unit visited;") != 1 {
		t.Error("expected visited steps to be deduplicated")
	}
	if !strings.Contains(out, "class image_processing current;") {
		t.Error("expected current step styling")
	}
}
