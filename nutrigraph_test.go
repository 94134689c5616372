package nutrigraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigraph/nutrigraph"
	"github.com/nutrigraph/nutrigraph/pkg/adapters/memory"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
)

func newAnalysisWorkflow(t *testing.T, opts ...nutrigraph.Option) *nutrigraph.Workflow {
	t.Helper()
	g, err := foodflow.Analysis()
	require.NoError(t, err)
	return nutrigraph.New(foodflow.WorkflowAnalysis, g, opts...)
}

func TestWorkflow_Invoke(t *testing.T) {
	wf := newAnalysisWorkflow(t)

	final, err := wf.Invoke(context.Background(), domain.State{
		foodflow.KeyUserImage: "lunch.png",
	})
	require.NoError(t, err)
	require.NotNil(t, final.Map(foodflow.KeyOutput))
}

func TestWorkflow_Execute(t *testing.T) {
	store := memory.NewStore()
	wf := newAnalysisWorkflow(t, nutrigraph.WithStore(store))

	run, err := wf.Execute(context.Background(), "run-1", domain.State{
		foodflow.KeyUserImage: "lunch.png",
	})
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, foodflow.WorkflowAnalysis, run.Workflow)
	assert.Equal(t, domain.RunCompleted, run.Status)
	assert.Equal(t, foodflow.StepUserImageUnit, run.Path[0])
	assert.Equal(t, foodflow.StepOutput, run.Path[len(run.Path)-1])
	assert.NotNil(t, run.Final.Map(foodflow.KeyOutput))
	assert.False(t, run.FinishedAt.Before(run.StartedAt))

	stored, err := store.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Path, stored.Path)
	assert.Equal(t, domain.RunCompleted, stored.Status)
}

func TestWorkflow_ExecuteFailure(t *testing.T) {
	store := memory.NewStore()
	g, err := foodflow.Analysis(foodflow.WithStep(foodflow.StepImageProcess,
		domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			return nil, assert.AnError
		})))
	require.NoError(t, err)

	wf := nutrigraph.New(foodflow.WorkflowAnalysis, g, nutrigraph.WithStore(store))
	run, err := wf.Execute(context.Background(), "run-2", domain.State{
		foodflow.KeyUserImage: "lunch.png",
	})
	require.Error(t, err)
	require.NotNil(t, run)

	assert.Equal(t, domain.RunFailed, run.Status)
	assert.NotEmpty(t, run.Error)
	assert.Nil(t, run.Final)
	assert.Equal(t, foodflow.StepImageProcess, run.Path[len(run.Path)-1])

	// Failed runs persist too.
	stored, loadErr := store.Load(context.Background(), "run-2")
	require.NoError(t, loadErr)
	assert.Equal(t, domain.RunFailed, stored.Status)
}

func TestWorkflow_ExecuteChainsHooks(t *testing.T) {
	var entered []string
	wf := newAnalysisWorkflow(t, nutrigraph.WithHooks(domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, ev *domain.StepEvent) {
			entered = append(entered, ev.Step)
		},
	}))

	run, err := wf.Execute(context.Background(), "run-3", domain.State{
		foodflow.KeyUserImage: "lunch.png",
	})
	require.NoError(t, err)

	// User hooks still fire alongside the path trace.
	assert.Equal(t, run.Path, entered)
}

func TestWorkflow_Accessors(t *testing.T) {
	wf := newAnalysisWorkflow(t)
	assert.Equal(t, foodflow.WorkflowAnalysis, wf.Name())
	require.NotNil(t, wf.Graph())
	assert.Equal(t, foodflow.StepUserImageUnit, wf.Graph().Entry())
}
