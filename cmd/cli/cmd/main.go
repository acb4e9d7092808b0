package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	version    = "1.0.0"
	// Build information variables
	GitCommit = "unknown" // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// printVersionInfo displays detailed version information
func printVersionInfo() {
	fmt.Printf("catalogwire CLI v%s\n", version)
	fmt.Printf("Built: %s, from commit: %s\n", BuildTime, GitCommit)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalogwire",
	Short: "Metadata catalog command line interface",
	Long: "A CLI for working with a metadata catalog: registering database services, extracting full " +
		"metadata trees, and listing tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("version") != nil && cmd.Flags().Lookup("version").Changed {
			printVersionInfo()
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.ExpandEnv("$HOME/.catalogwire/config.yaml"), "Path to config file")

	rootCmd.Flags().Bool("version", false, "Show version information and exit")

	// Initialize config when the command is executed
	cobra.OnInitialize(func() {
		if err := config.Init(configFile); err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			os.Exit(1)
		}
	})

	setupCommands()
}

func main() {
	Execute()
}
