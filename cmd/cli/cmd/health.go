package main

import (
	"github.com/catalogwire/catalogwire/cmd/cli/internal/metadata"
	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check catalog connectivity",
	Long:  "Check that the configured catalog endpoint is reachable and print its version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return metadata.Health()
	},
}
