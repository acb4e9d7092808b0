package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSetDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "", cfg.Get("catalog.url"))
	assert.Equal(t, "http://localhost:8585/api/v1", cfg.GetOrDefault("catalog.url", "http://localhost:8585/api/v1"))

	cfg.Set("catalog.url", "http://catalog:8585/api/v1")
	assert.Equal(t, "http://catalog:8585/api/v1", cfg.Get("catalog.url"))
	assert.Equal(t, "http://catalog:8585/api/v1", cfg.GetOrDefault("catalog.url", "unused"))
}

func TestGetInt(t *testing.T) {
	cfg := New()
	assert.Equal(t, 8080, cfg.GetInt("server.http_port", 8080))

	cfg.Set("server.http_port", "9090")
	assert.Equal(t, 9090, cfg.GetInt("server.http_port", 8080))

	cfg.Set("server.http_port", "not-a-number")
	assert.Equal(t, 8080, cfg.GetInt("server.http_port", 8080))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CATALOGWIRE_CATALOG_URL", "http://catalog:8585/api/v1")
	t.Setenv("CATALOGWIRE_CATALOG_TOKEN", "secret")
	t.Setenv("CATALOGWIRE_SERVER_HTTP_PORT", "9090")
	t.Setenv("UNRELATED_VAR", "ignored")

	cfg := New()
	cfg.LoadFromEnv()

	assert.Equal(t, "http://catalog:8585/api/v1", cfg.Get("catalog.url"))
	assert.Equal(t, "secret", cfg.Get("catalog.token"))
	assert.Equal(t, 9090, cfg.GetInt("server.http_port", 8080))
	assert.Equal(t, "", cfg.Get("unrelated.var"))
}

func TestRequiresRestart(t *testing.T) {
	cfg := New()
	cfg.Set("catalog.url", "http://a:8585")
	old := cfg.GetAll()

	cfg.Set("catalog.token", "rotated")
	assert.False(t, cfg.RequiresRestart(old))

	cfg.Set("catalog.url", "http://b:8585")
	assert.True(t, cfg.RequiresRestart(old))
}
