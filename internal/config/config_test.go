package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "hybrid", cfg.OrganizationMode)
	assert.Equal(t, "Starred", cfg.StarredFolder)
	assert.Equal(t, "YYYY/MM-Month", cfg.DateFolderFormat)
	assert.Equal(t, "{title}", cfg.FileNameFormat)
	assert.True(t, cfg.SkipEmptyMessages)
	assert.True(t, cfg.SeparateAssetsByType)
	assert.Equal(t, "\n\n", cfg.MessageSeparator)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.UserName = "Dan"
	cfg.InputPath = "/exports/chatgpt"
	cfg.OrganizationMode = "category"
	cfg.UseFrontmatter = false

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := `
input_path = "/exports/x"
user_name = "Dan"
`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Dan", cfg.UserName)
	assert.Equal(t, "/exports/x", cfg.InputPath)
	// unspecified keys keep defaults
	assert.Equal(t, "hybrid", cfg.OrganizationMode)
	assert.Equal(t, "ChatGPT", cfg.AssistantName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup")
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
