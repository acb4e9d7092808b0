package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/common"
	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/fatih/color"
)

// ExtractMetadata walks the full metadata tree of a service and prints a
// summary, or the complete response as JSON.
func ExtractMetadata(serviceName string, opts catalog.ExtractOptions, jsonOutput bool) error {
	client := common.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resp, err := client.ExtractDatabaseMetadata(ctx, serviceName, opts)
	if err != nil {
		return fmt.Errorf("failed to extract metadata: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Printf("%s Extracted metadata for service '%s' (%s)\n", green("✓"), resp.Service.Name, resp.Service.ServiceType)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Println()
	fmt.Fprintln(w, "Databases\tSchemas\tTables\tViews\tColumns\tOwners\tTags")
	fmt.Fprintln(w, "---------\t-------\t------\t-----\t-------\t------\t----")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		resp.Summary.TotalDatabases,
		resp.Summary.TotalSchemas,
		resp.Summary.TotalTables,
		resp.Summary.TotalViews,
		resp.Summary.TotalColumns,
		resp.Summary.TotalOwners,
		resp.Summary.TotalTags)
	_ = w.Flush()
	fmt.Println()

	for _, db := range resp.Databases {
		fmt.Printf("Database %s (%d schemas, %d tables)\n", db.Name, db.SchemaCount, db.TableCount)
		for _, sch := range db.Schemas {
			fmt.Printf("  Schema %s (%d tables)\n", sch.Name, sch.TableCount)
		}
	}
	fmt.Printf("\nExtracted at %s\n", resp.Summary.DataExtractionTimestamp)
	return nil
}

// ListTables prints the tables of a service, optionally filtered to a
// database or schema.
func ListTables(serviceName string, filter catalog.TableFilter, jsonOutput bool) error {
	client := common.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.ListTables(ctx, serviceName, filter)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	if resp.Count == 0 {
		fmt.Println("No tables found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Println()
	fmt.Fprintln(w, "Name\tType\tColumns\tFully Qualified Name")
	fmt.Fprintln(w, "----\t----\t-------\t--------------------")
	for _, table := range resp.Tables {
		tableType := table.TableType
		if tableType == "" {
			tableType = "Regular"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			table.Name,
			tableType,
			table.ColumnCount,
			table.FullyQualifiedName)
	}
	_ = w.Flush()
	fmt.Printf("\n%d tables\n", resp.Count)
	return nil
}

// Health reports whether the configured catalog endpoint is reachable.
func Health() error {
	client := common.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	info, err := client.ServerVersion(ctx)
	if err != nil {
		return fmt.Errorf("catalog at %s is not reachable: %w", client.BaseURL(), err)
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Printf("%s Catalog at %s is healthy (version %s)\n", green("✓"), client.BaseURL(), info.Version)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
