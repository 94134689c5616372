package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/engine"
	"github.com/nutrigraph/nutrigraph/pkg/graph"
)

// recorder builds steps that append their name to a shared visit log.
type recorder struct {
	visits []string
}

func (r *recorder) step(name string) domain.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.State, error) {
		r.visits = append(r.visits, name)
		state[name] = true
		return state, nil
	}
}

func mustBuild(t *testing.T, fn func(b *graph.Builder) error) *graph.Graph {
	t.Helper()
	b := graph.New()
	if err := fn(b); err != nil {
		t.Fatalf("building graph: %v", err)
	}
	g, err := b.Compile()
	if err != nil {
		t.Fatalf("compiling graph: %v", err)
	}
	return g
}

func TestInvoke_LinearOrder(t *testing.T) {
	rec := &recorder{}
	g := mustBuild(t, func(b *graph.Builder) error {
		for _, name := range []string{"first", "second", "third"} {
			if err := b.AddStep(name, rec.step(name)); err != nil {
				return err
			}
		}
		if err := b.AddEdge(graph.Start, "first"); err != nil {
			return err
		}
		if err := b.AddEdge("first", "second"); err != nil {
			return err
		}
		return b.AddEdge("second", "third")
	})

	final, err := engine.New().Invoke(context.Background(), g, domain.NewState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(rec.visits) != len(want) {
		t.Fatalf("expected visits %v, got %v", want, rec.visits)
	}
	for i, name := range want {
		if rec.visits[i] != name {
			t.Errorf("visit %d: expected %q, got %q", i, name, rec.visits[i])
		}
		if !final.Bool(name) {
			t.Errorf("final state missing marker for %q", name)
		}
	}
}

func TestInvoke_BranchReconvergence(t *testing.T) {
	build := func(rec *recorder) *graph.Graph {
		return mustBuild(t, func(b *graph.Builder) error {
			for _, name := range []string{"capture", "classify", "branch_a", "branch_b", "merge", "finish"} {
				if err := b.AddStep(name, rec.step(name)); err != nil {
					return err
				}
			}
			if err := b.AddEdge(graph.Start, "capture"); err != nil {
				return err
			}
			if err := b.AddEdge("capture", "classify"); err != nil {
				return err
			}
			if err := b.AddConditionalEdge("classify",
				func(ctx context.Context, state domain.State) (string, error) {
					if state.Bool("clear") {
						return "a", nil
					}
					return "b", nil
				},
				map[string]string{"a": "branch_a", "b": "branch_b"},
			); err != nil {
				return err
			}
			if err := b.AddEdge("branch_a", "merge"); err != nil {
				return err
			}
			if err := b.AddEdge("branch_b", "merge"); err != nil {
				return err
			}
			if err := b.AddEdge("merge", "finish"); err != nil {
				return err
			}
			return b.AddEdge("finish", graph.End)
		})
	}

	cases := []struct {
		name    string
		initial domain.State
		taken   string
		skipped string
	}{
		{"clear flag takes branch_a", domain.State{"clear": true}, "branch_a", "branch_b"},
		{"missing flag takes branch_b", domain.NewState(), "branch_b", "branch_a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			g := build(rec)

			final, err := engine.New().Invoke(context.Background(), g, tc.initial)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !final.Bool(tc.taken) {
				t.Errorf("expected branch %q to run", tc.taken)
			}
			if final.Has(tc.skipped) {
				t.Errorf("branch %q must not run", tc.skipped)
			}
			if !final.Bool("merge") || !final.Bool("finish") {
				t.Error("expected reconverged steps to run after the branch")
			}
			if got := rec.visits[len(rec.visits)-1]; got != "finish" {
				t.Errorf("expected finish last, got %q", got)
			}
		})
	}
}

func TestInvoke_RoutingError(t *testing.T) {
	rec := &recorder{}
	g := mustBuild(t, func(b *graph.Builder) error {
		for _, name := range []string{"classify", "handle"} {
			if err := b.AddStep(name, rec.step(name)); err != nil {
				return err
			}
		}
		if err := b.AddEdge(graph.Start, "classify"); err != nil {
			return err
		}
		if err := b.AddConditionalEdge("classify",
			func(ctx context.Context, state domain.State) (string, error) {
				return "surprise", nil
			},
			map[string]string{"known": "handle"},
		); err != nil {
			return err
		}
		return b.AddEdge("handle", graph.End)
	})

	final, err := engine.New().Invoke(context.Background(), g, domain.NewState())
	if final != nil {
		t.Errorf("expected nil state on routing failure, got %v", final)
	}

	var routing *domain.RoutingError
	if !errors.As(err, &routing) {
		t.Fatalf("expected RoutingError, got %v", err)
	}
	if routing.Step != "classify" || routing.Key != "surprise" {
		t.Errorf("unexpected error detail: %+v", routing)
	}
	if len(routing.Branches) != 1 || routing.Branches[0] != "known" {
		t.Errorf("expected declared branches [known], got %v", routing.Branches)
	}

	// The failed route must not have executed any further step.
	if len(rec.visits) != 1 || rec.visits[0] != "classify" {
		t.Errorf("expected only classify to run, got %v", rec.visits)
	}
}

func TestInvoke_StepFailure(t *testing.T) {
	boom := errors.New("upstream unavailable")
	rec := &recorder{}
	g := mustBuild(t, func(b *graph.Builder) error {
		if err := b.AddStep("prepare", rec.step("prepare")); err != nil {
			return err
		}
		if err := b.AddStep("explode", domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			state["partial"] = true
			return nil, boom
		})); err != nil {
			return err
		}
		if err := b.AddStep("after", rec.step("after")); err != nil {
			return err
		}
		if err := b.AddEdge(graph.Start, "prepare"); err != nil {
			return err
		}
		if err := b.AddEdge("prepare", "explode"); err != nil {
			return err
		}
		return b.AddEdge("explode", "after")
	})

	final, err := engine.New().Invoke(context.Background(), g, domain.NewState())
	if final != nil {
		t.Errorf("expected nil state after step failure, got %v", final)
	}

	var exec *domain.StepExecutionError
	if !errors.As(err, &exec) {
		t.Fatalf("expected StepExecutionError, got %v", err)
	}
	if exec.Step != "explode" {
		t.Errorf("expected failing step 'explode', got %q", exec.Step)
	}
	if !errors.Is(err, boom) {
		t.Error("expected wrapped cause to survive errors.Is")
	}
	if !exec.State.Bool("prepare") {
		t.Error("expected snapshot to contain state before the failing step")
	}
	for _, visited := range rec.visits {
		if visited == "after" {
			t.Error("no step may run after a failure")
		}
	}
}

func TestInvoke_NilReturnKeepsState(t *testing.T) {
	g := mustBuild(t, func(b *graph.Builder) error {
		if err := b.AddStep("seed", domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			state["seeded"] = true
			return state, nil
		})); err != nil {
			return err
		}
		if err := b.AddStep("silent", domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			return nil, nil
		})); err != nil {
			return err
		}
		if err := b.AddEdge(graph.Start, "seed"); err != nil {
			return err
		}
		return b.AddEdge("seed", "silent")
	})

	final, err := engine.New().Invoke(context.Background(), g, domain.NewState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Bool("seeded") {
		t.Error("a nil step result must keep the prior state")
	}
}

func TestInvoke_StepBudget(t *testing.T) {
	// Two steps ping-ponging through conditional edges, with an escape
	// hatch the routers never take. Compiles fine, never terminates.
	toggle := func(target string) domain.Router {
		return func(ctx context.Context, state domain.State) (string, error) {
			return target, nil
		}
	}
	g := mustBuild(t, func(b *graph.Builder) error {
		for _, name := range []string{"ping", "pong"} {
			if err := b.AddStep(name, domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
				return state, nil
			})); err != nil {
				return err
			}
		}
		if err := b.AddEdge(graph.Start, "ping"); err != nil {
			return err
		}
		if err := b.AddConditionalEdge("ping", toggle("again"), map[string]string{
			"again": "pong",
			"done":  graph.End,
		}); err != nil {
			return err
		}
		return b.AddConditionalEdge("pong", toggle("again"), map[string]string{
			"again": "ping",
			"done":  graph.End,
		})
	})

	exec := engine.New(engine.WithMaxSteps(10))
	final, err := exec.Invoke(context.Background(), g, domain.NewState())
	if final != nil {
		t.Errorf("expected nil state when the budget trips, got %v", final)
	}

	var budget *domain.StepBudgetExceededError
	if !errors.As(err, &budget) {
		t.Fatalf("expected StepBudgetExceededError, got %v", err)
	}
	if budget.Budget != 10 {
		t.Errorf("expected budget 10 in error, got %d", budget.Budget)
	}
}

func TestInvoke_ContextCancelled(t *testing.T) {
	g := mustBuild(t, func(b *graph.Builder) error {
		if err := b.AddStep("only", domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			return state, nil
		})); err != nil {
			return err
		}
		return b.AddEdge(graph.Start, "only")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.New().Invoke(ctx, g, domain.NewState())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in the chain, got %v", err)
	}
	var exec *domain.StepExecutionError
	if !errors.As(err, &exec) {
		t.Fatalf("expected StepExecutionError wrapper, got %v", err)
	}
}

func TestInvoke_Hooks(t *testing.T) {
	rec := &recorder{}
	g := mustBuild(t, func(b *graph.Builder) error {
		for _, name := range []string{"one", "two"} {
			if err := b.AddStep(name, rec.step(name)); err != nil {
				return err
			}
		}
		if err := b.AddEdge(graph.Start, "one"); err != nil {
			return err
		}
		if err := b.AddConditionalEdge("one",
			func(ctx context.Context, state domain.State) (string, error) { return "go", nil },
			map[string]string{"go": "two"},
		); err != nil {
			return err
		}
		return b.AddEdge("two", graph.End)
	})

	var entered, left []string
	var routes []string
	exec := engine.New(engine.WithHooks(domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, ev *domain.StepEvent) {
			entered = append(entered, ev.Step)
		},
		OnStepLeave: func(ctx context.Context, ev *domain.StepEvent) {
			left = append(left, ev.Step)
		},
		OnRouteResolved: func(ctx context.Context, ev *domain.RouteEvent) {
			routes = append(routes, ev.Step+":"+ev.Key+"->"+ev.Target)
		},
	}))

	if _, err := exec.Invoke(context.Background(), g, domain.NewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entered) != 2 || entered[0] != "one" || entered[1] != "two" {
		t.Errorf("unexpected enter events: %v", entered)
	}
	if len(left) != 2 {
		t.Errorf("unexpected leave events: %v", left)
	}
	if len(routes) != 1 || routes[0] != "one:go->two" {
		t.Errorf("unexpected route events: %v", routes)
	}
}

func TestInvoke_NilInitialState(t *testing.T) {
	g := mustBuild(t, func(b *graph.Builder) error {
		if err := b.AddStep("only", domain.StepFunc(func(ctx context.Context, state domain.State) (domain.State, error) {
			state["ran"] = true
			return state, nil
		})); err != nil {
			return err
		}
		return b.AddEdge(graph.Start, "only")
	})

	final, err := engine.New().Invoke(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Bool("ran") {
		t.Error("expected the engine to seed an empty state for nil input")
	}
}
