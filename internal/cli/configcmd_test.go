package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate/internal/config"
)

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	cfg := config.Default()
	cfg.ScrambleLength = 30

	require.NoError(t, writeConfig(path, cfg, false))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, got.ScrambleLength)

	cfg.ScrambleLength = 12
	assert.Error(t, writeConfig(path, cfg, false), "existing file is kept")
	got, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, got.ScrambleLength)

	require.NoError(t, writeConfig(path, cfg, true))
	got, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, got.ScrambleLength)
}

func TestWriteConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	cfg.LogLevel = "loud"

	assert.Error(t, writeConfig(path, cfg, false))
	assert.NoFileExists(t, path)
}
