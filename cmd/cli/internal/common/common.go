package common

import (
	"time"

	"github.com/catalogwire/catalogwire/cmd/cli/internal/config"
	"github.com/catalogwire/catalogwire/pkg/catalog"
)

// NewClient builds a catalog client from the CLI configuration.
func NewClient() *catalog.Client {
	cfg := config.GetConfig()

	opts := []catalog.Option{
		catalog.WithTimeout(time.Duration(cfg.Timeout) * time.Second),
	}
	if token := config.GetToken(); token != "" {
		opts = append(opts, catalog.WithToken(token))
	}
	return catalog.New(cfg.Endpoint, opts...)
}
