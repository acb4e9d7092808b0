package auth

import (
	"fmt"
	"os"
	"syscall"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/config"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// SetToken stores a catalog API token in the CLI configuration. The token
// is prompted for so it never lands in shell history.
func SetToken() error {
	fmt.Print("Catalog API token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := string(tokenBytes)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := config.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Printf("%s Token saved\n", green("✓"))
	return nil
}

// ClearToken removes the stored catalog API token.
func ClearToken() error {
	if err := config.SetToken(""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	fmt.Println("Token cleared.")
	return nil
}

// Status reports the configured endpoint and where the active token, if
// any, comes from.
func Status() error {
	cfg := config.GetConfig()
	fmt.Printf("Endpoint: %s\n", cfg.Endpoint)

	switch {
	case os.Getenv(config.TokenEnvVar) != "":
		fmt.Printf("Token:    set (from %s)\n", config.TokenEnvVar)
	case cfg.Token != "":
		fmt.Println("Token:    set (from config file)")
	default:
		fmt.Println("Token:    not set")
	}
	return nil
}
