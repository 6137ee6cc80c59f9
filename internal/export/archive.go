package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotZip marks a path that is not a readable ZIP archive.
var ErrNotZip = errors.New("not a valid ZIP archive")

// ErrNoConversations marks an archive that extracted fine but contains no
// conversations.json anywhere.
var ErrNoConversations = errors.New("conversations.json not found in archive")

// IsZipFile reports whether path is a readable ZIP archive.
func IsZipFile(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	r.Close()
	return true
}

// ExtractZip extracts a ChatGPT export archive into destDir (created if
// absent; defaults to a ChatGPT_Export directory next to the archive) and
// returns the directory that contains conversations.json.
func ExtractZip(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotZip, zipPath)
	}
	defer r.Close()

	if destDir == "" {
		destDir = filepath.Join(filepath.Dir(zipPath), "ChatGPT_Export")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create extraction dir: %w", err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return "", fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}

	// conversations.json is usually at the top level, but some exports
	// nest everything one directory down.
	if _, err := os.Stat(filepath.Join(destDir, ConversationsFile)); err == nil {
		return destDir, nil
	}
	var found string
	filepath.WalkDir(destDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == ConversationsFile && found == "" {
			found = filepath.Dir(path)
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		return "", ErrNoConversations
	}
	return found, nil
}

func extractEntry(f *zip.File, destDir string) error {
	name := filepath.FromSlash(f.Name)
	target := filepath.Join(destDir, name)

	// keep entries inside destDir
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("entry escapes extraction dir: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
