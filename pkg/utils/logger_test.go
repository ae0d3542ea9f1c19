package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(AppConfig{Name: "hotel-reservation", LogPath: dir})
	require.NoError(t, err)

	logger.Info("booking created")
	logger.Debug("suppressed at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"booking created"`)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.Contains(t, string(data), `"app":"hotel-reservation"`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestInitLoggerWithoutFileSink(t *testing.T) {
	logger, err := InitLogger(AppConfig{Debug: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
