/*
Package nutrigraph is a workflow graph engine for food-image nutrition
analysis pipelines.

It executes directed graphs of named steps connected by unconditional and
conditional edges. A shared state record is threaded through the run; each
step transforms it, routers select branches from it, and the run ends when
a terminal step is reached. The engine is deliberately small: image
analysis, medical parsing, and nutrition lookups are opaque steps supplied
by the integrator, while the engine owns ordering, branching, and
termination.

# Concept

A workflow is built once with the graph builder, validated and frozen by
Compile, and then shared by any number of concurrent runs. Each run owns
its own State; the compiled Graph is immutable.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/nutrigraph/nutrigraph"
		"github.com/nutrigraph/nutrigraph/pkg/domain"
		"github.com/nutrigraph/nutrigraph/pkg/foodflow"
	)

	func main() {
		g, err := foodflow.Analysis()
		if err != nil {
			log.Fatal(err)
		}

		wf := nutrigraph.New(foodflow.WorkflowAnalysis, g)

		final, err := wf.Invoke(context.Background(), domain.State{
			"user_image_unit": "lunch.jpg",
		})
		if err != nil {
			log.Fatal(err)
		}

		log.Printf("output: %v", final["output"])
	}

For persisted runs with a path trace, use Execute with a configured
RunStore. The pkg/graph package exposes the compiled topology for diagram
rendering.
*/
package nutrigraph
