package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ConversationsFile is the canonical document name inside an export root.
const ConversationsFile = "conversations.json"

// Document is a loaded export document: the conversations plus any entries
// that were not structured records (kept for reporting, not converted).
type Document struct {
	Conversations []Conversation
	Malformed     int // top-level entries that were not objects
}

// LoadFile reads one export document. The top level must be a JSON list;
// entries that are not objects are counted and skipped rather than failing
// the whole document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}

	doc := &Document{}
	for i, raw := range entries {
		var conv Conversation
		if err := json.Unmarshal(raw, &conv); err != nil {
			fmt.Fprintf(os.Stderr, "  WARN: skipping entry %d in %s: not a conversation record: %v\n", i, filepath.Base(path), err)
			doc.Malformed++
			continue
		}
		doc.Conversations = append(doc.Conversations, conv)
	}
	return doc, nil
}

// LoadDir reads every *.json document inside dir and merges the results.
// If the directory contains conversations.json it is an export root and
// only that file is read, so sibling metadata documents (user.json and
// friends) are not mistaken for conversation lists.
func LoadDir(dir string) (*Document, error) {
	if _, err := os.Stat(filepath.Join(dir, ConversationsFile)); err == nil {
		return LoadFile(filepath.Join(dir, ConversationsFile))
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no *.json documents found in %s", dir)
	}
	sort.Strings(paths)

	merged := &Document{}
	for _, p := range paths {
		doc, err := LoadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  WARN: %v\n", err)
			continue
		}
		merged.Conversations = append(merged.Conversations, doc.Conversations...)
		merged.Malformed += doc.Malformed
	}
	return merged, nil
}

// Root resolves the export root directory for attachment lookups: the
// directory containing the input document, or the input path itself when
// it is a directory.
func Root(inputPath string) string {
	info, err := os.Stat(inputPath)
	if err == nil && info.IsDir() {
		return inputPath
	}
	return filepath.Dir(inputPath)
}

// IsExportDir reports whether path is an already-extracted export
// directory (contains conversations.json).
func IsExportDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, ConversationsFile))
	return err == nil
}
