package main

import (
	"github.com/spf13/cobra"

	mcpadapter "github.com/nutrigraph/nutrigraph/internal/adapters/mcp"
	"github.com/nutrigraph/nutrigraph/internal/logging"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes the workflows as MCP tools so agent hosts can execute and inspect them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// Stdout carries the JSON-RPC stream, so logging stays on stderr
		// and run persistence is skipped.
		workflows, err := buildWorkflows(cfg, nil, logging.NewNop(), nil)
		if err != nil {
			return err
		}

		return mcpadapter.NewServer(workflows).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
