package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "filmdash"), GlobalConfigDir())
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/filmdash", GlobalConfigDir())
	assert.Equal(t, "/custom/config/filmdash/config.yaml", GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Dataset)
}

func writeGlobal(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "filmdash")
	require.NoError(t, os.MkdirAll(cfgDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o600))
}

func TestLoadGlobal_Valid(t *testing.T) {
	writeGlobal(t, "dataset: /data/movies.csv\nwatch: true\n")
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "/data/movies.csv", cfg.Dataset)
	require.NotNil(t, cfg.Watch)
	assert.True(t, *cfg.Watch)
}

func TestLoadGlobal_InvalidYAML(t *testing.T) {
	writeGlobal(t, "{{invalid yaml")
	_, err := LoadGlobal()
	assert.Error(t, err)
}
