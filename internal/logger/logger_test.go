package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestConfigure_LogFile(t *testing.T) {
	t.Setenv("KAYA_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "kaya.log")
	t.Cleanup(restoreDefault)

	require.NoError(t, Configure("debug", path, false))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	Debug("Writer idle", "pending", 0)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Writer idle")
}

func TestConfigure_EnvLevel(t *testing.T) {
	t.Setenv("KAYA_LOG_LEVEL", "WARN")
	t.Cleanup(restoreDefault)

	require.NoError(t, Configure("", "", false))
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())

	require.NoError(t, Configure("error", "", false))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel(), "flag beats env")
}

func TestConfigure_BadPath(t *testing.T) {
	err := Configure("info", filepath.Join(t.TempDir(), "missing", "kaya.log"), false)
	assert.Error(t, err)
}

func TestConfigure_LevelFilters(t *testing.T) {
	t.Cleanup(restoreDefault)
	path := filepath.Join(t.TempDir(), "kaya.log")
	require.NoError(t, Configure("warn", path, false))

	Info("hidden")
	Warn("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewStyledLogger(t *testing.T) {
	t.Cleanup(restoreDefault)
	path := filepath.Join(t.TempDir(), "kaya.log")
	require.NoError(t, Configure("debug", path, false))

	l := NewStyledLogger("Session")
	assert.Equal(t, log.DebugLevel, l.GetLevel(), "inherits the global level")
	l.Debug("Dropping submission while busy", "line", "theme")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Session")
	assert.Contains(t, string(data), "Dropping submission while busy")
}

func restoreDefault() {
	_ = Configure("info", "", false)
}
