// Package attach locates attachment files inside an export bundle and
// copies them into the organized output tree.
package attach

import (
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/organize"
)

// Kind classifies where an attachment was found, which decides its asset
// subdirectory.
type Kind string

const (
	KindImage Kind = "image"
	KindDalle Kind = "dalle"
	KindAudio Kind = "audio"
)

var (
	fileServiceRe = regexp.MustCompile(`file-service://(file-[A-Za-z0-9_-]+)`)
	sedimentRe    = regexp.MustCompile(`sediment://(file_[A-Za-z0-9_-]+)`)
)

// ExtractFileID pulls the file identifier out of an asset pointer string.
// Unmatched pointers return "".
func ExtractFileID(pointer string) string {
	if m := fileServiceRe.FindStringSubmatch(pointer); m != nil {
		return m[1]
	}
	if m := sedimentRe.FindStringSubmatch(pointer); m != nil {
		return m[1]
	}
	return ""
}

// Find searches the export bundle for the physical file behind fileID.
// Search order decides the kind: export root (image), dalle-generations/
// (dalle), user-*/ (image), any */audio/ subtree (audio). First match
// wins; a miss returns ok=false, which callers treat as normal flow.
func Find(fileID, exportRoot string) (path string, kind Kind, ok bool) {
	if fileID == "" {
		return "", "", false
	}

	if p := globFirst(filepath.Join(exportRoot, fileID+"-*")); p != "" {
		return p, KindImage, true
	}

	if p := globFirst(filepath.Join(exportRoot, "dalle-generations", fileID+"-*")); p != "" {
		return p, KindDalle, true
	}

	// user-* subtrees store files both prefixed and as the bare id
	if p := globFirst(filepath.Join(exportRoot, "user-*", fileID+"-*")); p != "" {
		return p, KindImage, true
	}
	if p := globFirst(filepath.Join(exportRoot, "user-*", fileID)); p != "" {
		return p, KindImage, true
	}

	if p := globFirst(filepath.Join(exportRoot, "*", "audio", fileID+"-*")); p != "" {
		return p, KindAudio, true
	}

	return "", "", false
}

func globFirst(pattern string) string {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			return m
		}
	}
	return ""
}

// Copy places the source file into the asset directory for its kind and
// returns a forward-slash path relative to the markdown file at destFile.
// A same-named file already present is left alone, so repeated runs and
// shared assets copy at most once. Returns ok=false when the source does
// not exist.
func Copy(srcPath, outputRoot string, kind Kind, cfg *config.Config, destFile string) (relPath string, ok bool) {
	if _, err := os.Stat(srcPath); err != nil {
		return "", false
	}

	assetDir := organize.AssetPath(outputRoot, string(kind), cfg)
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return "", false
	}

	target := filepath.Join(assetDir, filepath.Base(srcPath))
	if _, err := os.Stat(target); err != nil {
		if err := copyFile(srcPath, target); err != nil {
			return "", false
		}
	}

	return organize.RelativeAssetPath(destFile, target), true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
