package iofs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnfish/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnfish"),
		filepath.Join(tmpDir, ".cache", "gnfish"),
		filepath.Join(tmpDir, ".cache", "gnfish", "http"),
		filepath.Join(tmpDir, ".local", "share", "gnfish"),
		filepath.Join(tmpDir, ".local", "share", "gnfish", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, touchDir(filepath.Join(file, "sub")))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "gnfish", "config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// existing file is not overwritten
	custom := "# Custom config\ngbif:\n  limit: 5\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

// The embedded config documents the same defaults as config.New.
func TestConfigYAMLDefaults(t *testing.T) {
	assert := assert.New(t)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))
	def := config.New()

	assert.Equal(def.GBIF, cfg.GBIF)
	assert.Equal(def.IUCN, cfg.IUCN)
	assert.Equal(def.Store, cfg.Store)
	assert.Equal(def.Cache, cfg.Cache)
	assert.Equal(def.Server, cfg.Server)
	assert.Equal(def.Log, cfg.Log)
	assert.Equal(def.JobsNumber, cfg.JobsNumber)
	assert.Equal(5*time.Second, cfg.GBIF.Timeout)
}

func TestReadNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	data := "Atlantic Cod\n\n# comment\n  Yellowfin Tuna  \nRed Snapper"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	names, err := ReadNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlantic Cod", "Yellowfin Tuna", "Red Snapper"}, names)

	_, err = ReadNames(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
