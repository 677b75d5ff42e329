package configpaths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("custom.yml", "/work", "/home/u/.config/protoc-c-enum")

	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "custom.yml", yamlPaths[0])

	assert.Equal(t, []string{
		filepath.Join("/work", "protoc-c-enum.json"),
		filepath.Join("/work", "config.json"),
		filepath.Join("/home/u/.config/protoc-c-enum", "protoc-c-enum.json"),
		filepath.Join("/home/u/.config/protoc-c-enum", "config.json"),
	}, jsonPaths)
	assert.Len(t, tomlPaths, 4)
	assert.Len(t, yamlPaths, 9)
}

func TestConfigCandidatePathsUserExtensions(t *testing.T) {
	jsonPaths, _, _ := ConfigCandidatePaths("noext", "", "")
	assert.Equal(t, []string{"noext"}, jsonPaths)

	_, _, tomlPaths := ConfigCandidatePaths("c.toml", "", "")
	assert.Equal(t, []string{"c.toml"}, tomlPaths)
}

func TestDefaultConfigDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("AppData", "/appdata")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(dir))
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureDir(filepath.Join(root, "a", "b", "file.json")))
	assert.DirExists(t, filepath.Join(root, "a", "b"))
}
