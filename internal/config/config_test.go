package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Empty(t, cfg.Legacy.DataFile)
	assert.Equal(t, 32, cfg.Legacy.CacheSize)
	assert.True(t, cfg.Render.TrimBlocks)
	assert.True(t, cfg.Render.LStripBlocks)
	assert.Equal(t, "error", cfg.Render.MissingKey)
	assert.True(t, cfg.Hwdef.ValidateSchema)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
legacy:
  data_file: /opt/legacy.yaml
render:
  trim_blocks: false
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/opt/legacy.yaml", cfg.Legacy.DataFile)
	assert.False(t, cfg.Render.TrimBlocks)
	assert.True(t, cfg.Render.LStripBlocks)
}

func TestLoadDefaultFileFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hwdefs.yaml"),
		[]byte("hwdef:\n  validate_schema: false\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.False(t, cfg.Hwdef.ValidateSchema)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HWDEFS_LOG_LEVEL", "error")
	t.Setenv("HWDEFS_RENDER_MISSING_KEY", "zero")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "zero", cfg.Render.MissingKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
