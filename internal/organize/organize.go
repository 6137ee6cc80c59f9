package organize

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
)

// UnknownDateFolder holds conversations that have no creation timestamp
// when a date-based mode is active.
const UnknownDateFolder = "Unknown"

// ConversationPath maps a conversation to its output directory. Unknown
// organization modes fall back to flat.
func ConversationPath(conv *export.Conversation, cfg *config.Config, outputRoot string) string {
	category := Category(conv, cfg)

	switch cfg.OrganizationMode {
	case "category":
		if category != "" {
			return filepath.Join(outputRoot, category)
		}
		return outputRoot

	case "date":
		return filepath.Join(outputRoot, DateFolder(conv, cfg))

	case "hybrid":
		if category == "" {
			category = cfg.RegularFolder
		}
		return filepath.Join(outputRoot, category, DateFolder(conv, cfg))

	default: // "flat" and anything unrecognized
		return outputRoot
	}
}

// Category returns the configured folder name for starred or archived
// conversations, or "" for regular ones. Starred overrides archived.
func Category(conv *export.Conversation, cfg *config.Config) string {
	if conv.IsStarred {
		return cfg.StarredFolder
	}
	if conv.IsArchived {
		return cfg.ArchivedFolder
	}
	return ""
}

// DateFolder formats the conversation's creation time into a folder path.
// Named presets are recognized literally; any other value is treated as a
// Go reference layout.
func DateFolder(conv *export.Conversation, cfg *config.Config) string {
	t, ok := conv.CreatedAt()
	if !ok {
		return UnknownDateFolder
	}

	switch cfg.DateFolderFormat {
	case "YYYY/MM-Month", "":
		return fmt.Sprintf("%d/%s", t.Year(), t.Format("01-January"))
	case "YYYY-MM":
		return t.Format("2006-01")
	case "YYYY/MM":
		return t.Format("2006/01")
	default:
		return t.Format(cfg.DateFolderFormat)
	}
}

// AssetPath returns the directory for copied attachments of the given
// kind ("image", "dalle" or "audio").
func AssetPath(outputRoot, kind string, cfg *config.Config) string {
	if !cfg.SeparateAssetsByType {
		return filepath.Join(outputRoot, "Assets")
	}

	var subdir string
	switch kind {
	case "audio":
		subdir = "Audio"
	case "dalle":
		subdir = "DALLE"
	default:
		subdir = "Images"
	}
	return filepath.Join(outputRoot, "Assets", subdir)
}

// RelativeAssetPath returns the asset's path relative to the conversation
// file's directory, with forward slashes for markdown embedding.
func RelativeAssetPath(conversationFile, assetFile string) string {
	rel, err := filepath.Rel(filepath.Dir(conversationFile), assetFile)
	if err != nil {
		return filepath.ToSlash(assetFile)
	}
	return filepath.ToSlash(rel)
}

// Summary describes how a batch of conversations will be organized.
type Summary struct {
	Total    int
	Starred  int
	Archived int
	Regular  int
	Mode     string
	Folders  []string
}

// Summarize counts categories and the distinct target folders for a batch.
func Summarize(convs []export.Conversation, cfg *config.Config, outputRoot string) Summary {
	s := Summary{Total: len(convs), Mode: cfg.OrganizationMode}

	seen := make(map[string]struct{})
	for i := range convs {
		conv := &convs[i]
		switch {
		case conv.IsStarred:
			s.Starred++
		case conv.IsArchived:
			s.Archived++
		default:
			s.Regular++
		}
		seen[ConversationPath(conv, cfg, outputRoot)] = struct{}{}
	}

	for dir := range seen {
		s.Folders = append(s.Folders, dir)
	}
	sort.Strings(s.Folders)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("total=%d starred=%d archived=%d regular=%d folders=%d mode=%s",
		s.Total, s.Starred, s.Archived, s.Regular, len(s.Folders), s.Mode)
}
