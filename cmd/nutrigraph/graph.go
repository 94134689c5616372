package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pres "github.com/nutrigraph/nutrigraph/internal/presentation/graph"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [workflow]",
	Short: "Export the workflow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) representing the workflow topology.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := foodflow.WorkflowAnalysis
		if len(args) > 0 {
			name = args[0]
		}

		g, err := foodflow.Build(name)
		if err != nil {
			return fmt.Errorf("failed to build workflow %q: %w", name, err)
		}

		fmt.Print(pres.GenerateMermaid(g, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
