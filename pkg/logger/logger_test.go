package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-service", "1.0.0")
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestFormattingAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-service", "1.0.0")
	l.SetOutput(&buf)

	l.Infof("processed %d tables", 12)
	l.WithFields(map[string]string{"service": "prod-pg", "database": "sales"}).Info("extraction complete")

	out := buf.String()
	assert.Contains(t, out, "processed 12 tables")
	assert.Contains(t, out, "extraction complete")
	// Fields are appended sorted by key.
	assert.Contains(t, out, "database=sales service=prod-pg")
	// Colors are off for non-stdout writers.
	assert.NotContains(t, out, "\033[")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
