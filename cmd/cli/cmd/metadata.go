package main

import (
	"github.com/catalogwire/catalogwire/cmd/cli/internal/metadata"
	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/spf13/cobra"
)

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Extract metadata from the catalog",
	Long:  "Commands for extracting the full metadata tree of a database service.",
}

// extractMetadataCmd represents the extract command
var extractMetadataCmd = &cobra.Command{
	Use:   "extract [service-name]",
	Short: "Extract the full metadata tree of a service",
	Long: "Walk all databases, schemas, tables and columns of a database service and print a summary. " +
		"Use --json to print the complete response instead.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts catalog.ExtractOptions
		opts.IncludeSampleData, _ = cmd.Flags().GetBool("sample-data")
		opts.IncludeProfiles, _ = cmd.Flags().GetBool("profiles")
		opts.IncludeLineage, _ = cmd.Flags().GetBool("lineage")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return metadata.ExtractMetadata(args[0], opts, jsonOutput)
	},
}

func init() {
	extractMetadataCmd.Flags().Bool("sample-data", false, "Include table sample data")
	extractMetadataCmd.Flags().Bool("profiles", false, "Include table profiles")
	extractMetadataCmd.Flags().Bool("lineage", false, "Include lineage information")
	extractMetadataCmd.Flags().Bool("json", false, "Print the full response as JSON")

	metadataCmd.AddCommand(extractMetadataCmd)
}
