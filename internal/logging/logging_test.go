package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden", "info line should be filtered")
	assert.Contains(t, out, "[WARN] shown 2")
}

func TestLogger_WithSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug)
	root.SetOutput(&buf)

	child := root.With("meteor").With("heap")
	child.Debug("expired %d", 3)

	assert.Contains(t, buf.String(), "meteor.heap: expired 3")

	root.SetLevel(LevelError)
	assert.False(t, child.Enabled(LevelDebug), "child should follow parent level")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(LevelError), "Discard logger should not be enabled for any level")
	l.Error("nothing")
}
