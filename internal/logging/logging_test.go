package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/trix3d/internal/logging"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetupStderr(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	closer, err := logging.Setup(logging.Options{Level: slog.LevelWarn, Stderr: &buf})
	require.NoError(t, err)
	defer closer.Close()

	slog.Info("hidden")
	slog.Warn("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown n=1")
}

func TestSetupFile(t *testing.T) {
	restoreDefault(t)
	p := filepath.Join(t.TempDir(), "log", "trix3d.log")
	closer, err := logging.Setup(logging.Options{Level: slog.LevelDebug, File: p})
	require.NoError(t, err)

	slog.Debug("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
