package main

import (
	"github.com/catalogwire/catalogwire/cmd/cli/internal/auth"
	"github.com/spf13/cobra"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage catalog authentication",
	Long:  "Commands for storing and inspecting the catalog API token used by the CLI.",
}

// setTokenCmd represents the set-token command
var setTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a catalog API token",
	Long:  "Prompt for a catalog API token and store it in the CLI configuration file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return auth.SetToken()
	},
}

// clearTokenCmd represents the clear-token command
var clearTokenCmd = &cobra.Command{
	Use:   "clear-token",
	Short: "Remove the stored catalog API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return auth.ClearToken()
	},
}

// authStatusCmd represents the status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured endpoint and token source",
	RunE: func(cmd *cobra.Command, args []string) error {
		return auth.Status()
	},
}

func init() {
	authCmd.AddCommand(setTokenCmd)
	authCmd.AddCommand(clearTokenCmd)
	authCmd.AddCommand(authStatusCmd)
}
