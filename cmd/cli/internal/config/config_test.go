package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	require.NoError(t, Init(path))

	cfg := GetConfig()
	assert.Equal(t, "http://localhost:8585/api/v1", cfg.Endpoint)
	assert.Equal(t, 30, cfg.Timeout)

	// The default file must exist and round-trip.
	_, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, Init(path))
	assert.Equal(t, "http://localhost:8585/api/v1", GetConfig().Endpoint)
}

func TestInitReadsExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: https://catalog.example.com/api/v1\ntimeout: 60\n"), 0o600))

	require.NoError(t, Init(path))

	cfg := GetConfig()
	assert.Equal(t, "https://catalog.example.com/api/v1", cfg.Endpoint)
	assert.Equal(t, 60, cfg.Timeout)
}

func TestTokenPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path))

	assert.Empty(t, GetToken())

	require.NoError(t, SetToken("file-token"))
	assert.Equal(t, "file-token", GetToken())

	t.Setenv(TokenEnvVar, "env-token")
	assert.Equal(t, "env-token", GetToken())
}
