package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nutrigraph/nutrigraph"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
)

func newTestServer(t *testing.T, opts ...foodflow.Option) *Server {
	t.Helper()

	workflows := make(map[string]*nutrigraph.Workflow)
	for _, name := range foodflow.Names() {
		g, err := foodflow.Build(name, opts...)
		if err != nil {
			t.Fatalf("failed to build %s: %v", name, err)
		}
		workflows[name] = nutrigraph.New(name, g)
	}
	return NewServer(workflows)
}

func TestHandleRunWorkflow(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.handleRunWorkflow(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"workflow": "analysis",
		"state":    `{"user_image_unit": "lunch.jpg"}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Run == nil {
		t.Fatal("expected a run record")
	}
	if resp.Run.Status != domain.RunCompleted {
		t.Errorf("expected completed run, got %s (%s)", resp.Run.Status, resp.Run.Error)
	}
	if resp.Run.Final.Map(foodflow.KeyOutput) == nil {
		t.Error("expected output in final state")
	}
}

func TestHandleRunWorkflow_FailedRun(t *testing.T) {
	failing := domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
		return nil, context.DeadlineExceeded
	})
	srv := newTestServer(t, foodflow.WithStep(foodflow.StepImageProcess, failing))

	// A failed run is still a valid tool result: the record carries the
	// status and error text instead of a protocol error.
	resp, err := srv.handleRunWorkflow(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"workflow": "analysis",
		"state":    `{"user_image_unit": "lunch.jpg"}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Run == nil {
		t.Fatal("expected a run record")
	}
	if resp.Run.Status != domain.RunFailed {
		t.Errorf("expected failed run, got %s", resp.Run.Status)
	}
	if resp.Run.Error == "" {
		t.Error("expected the run record to carry the failure detail")
	}
}

func TestHandleRunWorkflow_BadArguments(t *testing.T) {
	srv := newTestServer(t)

	if _, err := srv.handleRunWorkflow(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"workflow": "nope",
	}); err == nil {
		t.Error("expected an error for an unknown workflow")
	}

	if _, err := srv.handleRunWorkflow(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"workflow": "analysis",
		"state":    "{not json",
	}); err == nil {
		t.Error("expected an error for invalid state JSON")
	}
}
