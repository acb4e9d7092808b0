package main

import (
	"github.com/catalogwire/catalogwire/cmd/cli/internal/services"
	"github.com/spf13/cobra"
)

// servicesCmd represents the services command
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage database services",
	Long:  "Commands for registering database services in the metadata catalog.",
}

// createServiceCmd represents the create command
var createServiceCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a database service",
	Long: "Register a database service in the catalog. Either pass a full payload document with --file, " +
		"or describe a PostgreSQL service with the connection flags. When no --password is given the " +
		"password is prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := services.CreateOptions{}
		opts.File, _ = cmd.Flags().GetString("file")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.ServiceType, _ = cmd.Flags().GetString("type")
		opts.Description, _ = cmd.Flags().GetString("description")
		opts.DisplayName, _ = cmd.Flags().GetString("display-name")
		opts.Tags, _ = cmd.Flags().GetStringArray("tag")
		opts.Owners, _ = cmd.Flags().GetStringArray("owner")
		opts.Username, _ = cmd.Flags().GetString("username")
		opts.Password, _ = cmd.Flags().GetString("password")
		opts.HostPort, _ = cmd.Flags().GetString("host-port")
		opts.Database, _ = cmd.Flags().GetString("database")
		opts.SSLMode, _ = cmd.Flags().GetString("ssl-mode")
		return services.CreateService(opts)
	},
}

func init() {
	createServiceCmd.Flags().String("file", "", "Path to a JSON service payload document")
	createServiceCmd.Flags().String("name", "", "Service name")
	createServiceCmd.Flags().String("type", "", "Service type or alias, e.g. postgres (default PostgreSQL)")
	createServiceCmd.Flags().String("description", "", "Service description")
	createServiceCmd.Flags().String("display-name", "", "Service display name")
	createServiceCmd.Flags().StringArray("tag", nil, "Tag FQN to attach (repeatable)")
	createServiceCmd.Flags().StringArray("owner", nil, "Owner as name or name:type (repeatable)")
	createServiceCmd.Flags().String("username", "", "Database username")
	createServiceCmd.Flags().String("password", "", "Database password (prompted when omitted)")
	createServiceCmd.Flags().String("host-port", "", "Database host:port")
	createServiceCmd.Flags().String("database", "", "Database name to connect to")
	createServiceCmd.Flags().String("ssl-mode", "", "SSL mode (disable, allow, prefer, require, verify-ca, verify-full)")

	servicesCmd.AddCommand(createServiceCmd)
}
