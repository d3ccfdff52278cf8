package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backsoul/mathquiz/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "quiz.log")
	log, err := New("production", config.LogConfig{Level: "info", File: file, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("✅ Nueva sesión creada", zap.String("session_id", "abc"))
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_DevelopmentIsDebug(t *testing.T) {
	t.Parallel()

	log, err := New("development", config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New("production", config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
