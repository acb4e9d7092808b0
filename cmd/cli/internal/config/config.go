package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TokenEnvVar overrides the stored token when set.
const TokenEnvVar = "CATALOGWIRE_TOKEN"

type Config struct {
	// Catalog API base URL, including /api/v1.
	Endpoint string `yaml:"endpoint"`
	// Request timeout in seconds.
	Timeout int `yaml:"timeout"`
	// Bearer token for the catalog, if it requires one.
	Token string `yaml:"token,omitempty"`
}

var (
	globalConfig *Config
	configPath   string
)

// Init initializes the configuration from the specified file
func Init(configFile string) error {
	configPath = configFile

	globalConfig = &Config{
		Endpoint: "http://localhost:8585/api/v1",
		Timeout:  30,
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	// Try to read existing config file
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %v", err)
		}

		if err := yaml.Unmarshal(data, globalConfig); err != nil {
			return fmt.Errorf("failed to parse config file: %v", err)
		}
	} else {
		// Create default config file
		data, err := yaml.Marshal(globalConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %v", err)
		}

		if err := os.WriteFile(configFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write default config file: %v", err)
		}
	}

	return nil
}

// GetConfig returns the global configuration
func GetConfig() *Config {
	return globalConfig
}

// GetToken returns the catalog token, preferring the environment variable
// over the config file.
func GetToken() string {
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token
	}
	return globalConfig.Token
}

// SetToken stores the token in the config file.
func SetToken(token string) error {
	globalConfig.Token = token
	return Save()
}

// Save writes the current configuration back to its file.
func Save() error {
	data, err := yaml.Marshal(globalConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}
