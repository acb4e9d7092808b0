package main

import (
	"fmt"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/metadata"
	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/spf13/cobra"
)

// tablesCmd represents the tables command
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables of a service",
	Long:  "Commands for listing the tables of a database service, optionally filtered to a database or schema.",
}

// listTablesCmd represents the list command
var listTablesCmd = &cobra.Command{
	Use:   "list [service-name]",
	Short: "List tables",
	Long:  "Display a formatted list of the tables of a database service.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter catalog.TableFilter
		filter.Database, _ = cmd.Flags().GetString("database")
		filter.Schema, _ = cmd.Flags().GetString("schema")
		noColumns, _ := cmd.Flags().GetBool("no-columns")
		filter.IncludeColumns = !noColumns
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if filter.Schema != "" && filter.Database == "" {
			return fmt.Errorf("--schema requires --database")
		}
		return metadata.ListTables(args[0], filter, jsonOutput)
	},
}

func init() {
	listTablesCmd.Flags().String("database", "", "Restrict the listing to one database")
	listTablesCmd.Flags().String("schema", "", "Restrict the listing to one schema (requires --database)")
	listTablesCmd.Flags().Bool("no-columns", false, "Omit column details from the response")
	listTablesCmd.Flags().Bool("json", false, "Print the full response as JSON")

	tablesCmd.AddCommand(listTablesCmd)
}
