package main

// setupCommands initializes all commands and their relationships
func setupCommands() {
	// Add services commands
	rootCmd.AddCommand(servicesCmd)

	// Add metadata commands
	rootCmd.AddCommand(metadataCmd)

	// Add tables commands
	rootCmd.AddCommand(tablesCmd)

	// Add auth commands
	rootCmd.AddCommand(authCmd)

	// Add health command
	rootCmd.AddCommand(healthCmd)
}
