package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"  ERROR ", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		require.NoError(t, err, "level %q", tt.in)
		assert.Equal(t, tt.want, got, "level %q", tt.in)
	}
}

func TestParseLevelInvalid(t *testing.T) {
	_, err := parseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	require.Error(t, Configure("nope"))
	require.NoError(t, Configure("debug"))
}
