package wizard

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYesNo(t *testing.T) {
	for _, yes := range []string{"y", "Y", "yes", "YES", ""} {
		got, err := parseYesNo(yes, true)
		require.NoError(t, err, "input %q", yes)
		assert.True(t, got, "input %q", yes)
	}
	for _, no := range []string{"n", "NO"} {
		got, err := parseYesNo(no, true)
		require.NoError(t, err)
		assert.False(t, got)
	}
	_, err := parseYesNo("maybe", true)
	assert.Error(t, err)
}

func TestResolveInputPathExportDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conversations.json"), []byte("[]"), 0o644))

	// quoted paths from drag & drop are unwrapped
	got, err := resolveInputPath(`"` + dir + `"`)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveInputPathZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("conversations.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte("[]"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	got, err := resolveInputPath(zipPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(got, "conversations.json"))
}

func TestResolveInputPathInvalid(t *testing.T) {
	_, err := resolveInputPath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = resolveInputPath("")
	assert.Error(t, err)
}
