package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_ZeroConfigGetsDefaults(t *testing.T) {
	log, err := New(&Config{})
	require.NoError(t, err)
	require.NotNil(t, log)

	log, err = New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "verbose"})
	assert.ErrorContains(t, err, "unknown level")
}

func TestNew_JSONFormat(t *testing.T) {
	log, err := New(&Config{Level: "debug", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	log, err := New(&Config{Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("listing published")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listing published")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		require.NoError(t, err, "level %q", tt.in)
		assert.Equal(t, tt.want, got, "level %q", tt.in)
	}

	_, err := parseLevel("trace")
	assert.Error(t, err)
}

func TestConfigBackfill(t *testing.T) {
	cfg := Config{}
	cfg.backfill()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)

	cfg = Config{Level: "error", Format: "json"}
	cfg.backfill()
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}
