package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")
	writeZip(t, zipPath, map[string]string{
		"conversations.json":           "[]",
		"dalle-generations/file-1.png": "png",
	})

	dest := filepath.Join(dir, "extracted")
	root, err := ExtractZip(zipPath, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, root)
	assert.FileExists(t, filepath.Join(root, "conversations.json"))
	assert.FileExists(t, filepath.Join(root, "dalle-generations", "file-1.png"))
}

func TestExtractZipNestedConversations(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")
	writeZip(t, zipPath, map[string]string{
		"export-2025/conversations.json": "[]",
	})

	root, err := ExtractZip(zipPath, filepath.Join(dir, "x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x", "export-2025"), root)
}

func TestExtractZipNoConversations(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")
	writeZip(t, zipPath, map[string]string{"readme.txt": "hi"})

	_, err := ExtractZip(zipPath, filepath.Join(dir, "x"))
	assert.ErrorIs(t, err, ErrNoConversations)
}

func TestExtractZipInvalidArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ExtractZip(path, filepath.Join(dir, "x"))
	assert.ErrorIs(t, err, ErrNotZip)
}

func TestIsZipFile(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "ok.zip")
	writeZip(t, zipPath, map[string]string{"a": "b"})
	assert.True(t, IsZipFile(zipPath))

	bogus := filepath.Join(dir, "bogus.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("nope"), 0o644))
	assert.False(t, IsZipFile(bogus))
	assert.False(t, IsZipFile(filepath.Join(dir, "missing.zip")))
}
