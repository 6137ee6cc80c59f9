// Package convert orchestrates the batch: load once, then one
// conversation at a time through organize, render and the filesystem.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/content"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/manifest"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/organize"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/render"
)

type Stats struct {
	Conversations int // structured entries seen
	Converted     int // markdown files written
	Skipped       int // empty mapping or malformed entry
	Assets        int // attachments copied (per reference, deduped on disk)
	Errors        int // write failures
}

func (s Stats) String() string {
	return fmt.Sprintf("conversations=%d converted=%d skipped=%d assets=%d errors=%d",
		s.Conversations, s.Converted, s.Skipped, s.Assets, s.Errors)
}

// Converter runs one conversion batch. Manifest may be nil; recording is
// best effort either way.
type Converter struct {
	Config     *config.Config
	ExportRoot string
	Manifest   *manifest.DB
	RunID      string
	Quiet      bool
}

// Run converts every conversation in the document. A malformed or empty
// conversation is logged and skipped; the batch always completes.
func (c *Converter) Run(doc *export.Document) Stats {
	var stats Stats
	stats.Skipped = doc.Malformed

	outputRoot := c.Config.OutputDirectory

	for i := range doc.Conversations {
		conv := &doc.Conversations[i]
		stats.Conversations++

		if conv.Mapping.Len() == 0 {
			fmt.Fprintf(os.Stderr, "  WARN: skipping %q: no message mapping\n", render.DisplayTitle(conv))
			stats.Skipped++
			continue
		}

		written, assets, err := c.convertOne(conv, outputRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  WARN: %v\n", err)
			stats.Errors++
			continue
		}

		stats.Converted++
		stats.Assets += assets
		if !c.Quiet {
			fmt.Fprintf(os.Stderr, "  %s\n", runewidth.Truncate(filepath.Base(written), 70, "..."))
		}
	}

	return stats
}

func (c *Converter) convertOne(conv *export.Conversation, outputRoot string) (string, int, error) {
	dir := organize.ConversationPath(conv, c.Config, outputRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create %s: %w", dir, err)
	}

	fileTitle := render.FileTitle(conv)
	destFile := filepath.Join(dir, render.FileName(fileTitle, c.Config))

	doc, attachments := render.Conversation(conv, content.Env{
		ExportRoot: c.ExportRoot,
		OutputRoot: outputRoot,
		DestFile:   destFile,
		Config:     c.Config,
	})

	// markdown files are overwritten unconditionally; assets are not
	if err := os.WriteFile(destFile, []byte(doc), 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", destFile, err)
	}

	if c.Manifest != nil && c.RunID != "" {
		c.Manifest.RecordFile(c.RunID, destFile, fileTitle)
		for _, a := range attachments {
			c.Manifest.RecordAsset(c.RunID, a)
		}
	}

	return destFile, len(attachments), nil
}
