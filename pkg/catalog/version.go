package catalog

import (
	"context"
	"fmt"
)

// VersionInfo is the catalog server's version report.
type VersionInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Timestamp int64  `json:"timestamp"`
}

// ServerVersion fetches the catalog server's version.
func (c *Client) ServerVersion(ctx context.Context) (VersionInfo, error) {
	var info VersionInfo
	if err := c.get(ctx, "system/version", nil, &info); err != nil {
		return VersionInfo{}, err
	}
	return info, nil
}

// CheckHealth verifies the catalog is reachable and answering.
func (c *Client) CheckHealth(ctx context.Context) error {
	if _, err := c.ServerVersion(ctx); err != nil {
		return fmt.Errorf("catalog connection failed: %w", err)
	}
	return nil
}
