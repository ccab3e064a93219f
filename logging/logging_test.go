package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closeFn, err := Setup(Options{Dir: dir})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("dropped")
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closeFn, err := Setup(Options{Debug: true, Dir: dir})
	require.NoError(t, err)

	logger.Info("test log message")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test log message")
	assert.Contains(t, string(data), `"level":"info"`)
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	// Write just over 10MB
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644))

	logger, closeFn, err := Setup(Options{Debug: true, Dir: dir})
	require.NoError(t, err)
	logger.Debug("after rotation")
	require.NoError(t, closeFn())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	assert.True(t, rotatedFound, "expected a rotated log file")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestSetup_SmallFileAppends(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)
	require.NoError(t, os.WriteFile(logPath, []byte("previous\n"), 0o644))

	logger, closeFn, err := Setup(Options{Debug: true, Dir: dir})
	require.NoError(t, err)
	logger.Info("next")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous")
	assert.Contains(t, string(data), "next")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
