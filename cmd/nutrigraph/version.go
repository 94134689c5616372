package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutrigraph/nutrigraph"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nutrigraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nutrigraph version %s\n", nutrigraph.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
