package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("writes JSON to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "timerdeck.log")
		logger, closer, err := New(Options{Path: path, Level: "info"})
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("session completed", "mode", "focus")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
		require.Len(t, lines, 1)

		var record map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &record))
		assert.Equal(t, "session completed", record["msg"])
		assert.Equal(t, "focus", record["mode"])
		assert.Equal(t, "timerdeck", record["app"])
	})

	t.Run("verbose mirrors to stderr", func(t *testing.T) {
		var stderr bytes.Buffer
		logger, closer, err := New(Options{Verbose: true, Stderr: &stderr, Level: "debug"})
		require.NoError(t, err)
		defer closer.Close()

		logger.Debug("tick dropped")
		assert.Contains(t, stderr.String(), "tick dropped")
	})

	t.Run("no outputs discards", func(t *testing.T) {
		logger, closer, err := New(Options{})
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
		assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	})
}
