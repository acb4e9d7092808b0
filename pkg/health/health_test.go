package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallStatus(t *testing.T) {
	c := NewChecker()
	assert.Equal(t, StatusHealthy, c.GetOverallStatus())

	c.RunCheck("catalog", func() error { return nil })
	assert.Equal(t, StatusHealthy, c.GetOverallStatus())

	c.RunCheck("upstream", func() error { return errors.New("connection refused") })
	assert.Equal(t, StatusDegraded, c.GetOverallStatus())

	c.RunCheck("catalog", func() error { return errors.New("timeout") })
	assert.Equal(t, StatusUnhealthy, c.GetOverallStatus())

	c.RunCheck("catalog", func() error { return nil })
	c.RunCheck("upstream", func() error { return nil })
	assert.Equal(t, StatusHealthy, c.GetOverallStatus())
}

func TestCheckResults(t *testing.T) {
	c := NewChecker()
	c.RunCheck("catalog", func() error { return errors.New("connection refused") })

	checks := c.GetAllChecks()
	require.Len(t, checks, 1)
	assert.Equal(t, "catalog", checks[0].Name)
	assert.Equal(t, StatusUnhealthy, checks[0].Status)
	assert.Equal(t, "connection refused", checks[0].Message)
	assert.False(t, checks[0].LastChecked.IsZero())
}
