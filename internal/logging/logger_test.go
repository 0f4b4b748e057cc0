package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "level %q", tt.input)
	}
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	logger := NewLogger("debug")
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	logger = NewLogger("error")
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
}
