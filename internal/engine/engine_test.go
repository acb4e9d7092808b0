package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogwire/catalogwire/pkg/config"
)

func TestStartRecoversFromBadPortConfig(t *testing.T) {
	cfg := config.New()
	cfg.Set("server.http_port", "not-a-port")

	e := NewEngine(cfg)
	ctx := context.Background()

	err := e.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port configuration")

	// A corrected config must be able to start the engine; a failed start
	// must not leave it marked as running.
	cfg.Set("server.http_port", "0")
	require.NoError(t, e.Start(ctx))
	require.NoError(t, e.Stop(ctx))
}

func TestStartTwiceIsRejected(t *testing.T) {
	cfg := config.New()
	cfg.Set("server.http_port", "0")

	e := NewEngine(cfg)
	ctx := context.Background()

	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	err := e.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
