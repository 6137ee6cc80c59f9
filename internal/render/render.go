// Package render assembles one conversation into a markdown document.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/content"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
)

// FallbackTitle is used when a conversation has no stored title. Title
// inference from the first message is deliberately not done: it would
// couple naming to content extraction and can trip on malformed content.
const FallbackTitle = "Untitled Conversation"

const timestampLayout = "2006-01-02 15:04:05"

// DisplayTitle resolves the human-readable title for a conversation.
func DisplayTitle(conv *export.Conversation) string {
	if strings.TrimSpace(conv.Title) != "" {
		return conv.Title
	}
	return FallbackTitle
}

// SanitizeTitle keeps only alphanumerics, spaces, underscores and hyphens
// and trims trailing whitespace. Idempotent.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " \t")
}

// FileTitle returns the sanitized title, substituting a synthetic name
// from the creation time when sanitization leaves nothing.
func FileTitle(conv *export.Conversation) string {
	sanitized := SanitizeTitle(DisplayTitle(conv))
	if sanitized != "" {
		return sanitized
	}
	if t, ok := conv.CreatedAt(); ok {
		return "Conversation " + t.Format("2006-01-02 150405")
	}
	return FallbackTitle
}

// FileName applies the configured naming template to the sanitized title
// and appends the markdown extension. Spaces become underscores so the
// names stay shell-friendly.
func FileName(fileTitle string, cfg *config.Config) string {
	name := strings.ReplaceAll(fileTitle, " ", "_")
	format := cfg.FileNameFormat
	if format == "" {
		format = "{title}"
	}
	return strings.ReplaceAll(format, "{title}", name) + ".md"
}

// SortMessages orders messages by create_time ascending. Messages without
// a timestamp sort first; the sort is stable so equal and missing
// timestamps keep their original relative order.
func SortMessages(msgs []*export.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		ti, tj := msgs[i].CreateTime, msgs[j].CreateTime
		if ti == nil {
			return tj != nil
		}
		if tj == nil {
			return false
		}
		return *ti < *tj
	})
}

// AuthorLabel derives the display label for a message's author. Tool
// messages carry the tool name; assistant/user labels gain a suffix for
// tool calls, thinking and reasoning blocks; user-context blocks always
// render as system context.
func AuthorLabel(msg *export.Message, block content.Block, cfg *config.Config) string {
	if msg.Author.Role == "tool" {
		name := msg.Author.Name
		if name == "" {
			name = "tool"
		}
		return fmt.Sprintf("Tool (%s)", name)
	}

	base := cfg.AssistantName
	if msg.Author.Role == "user" {
		base = cfg.UserName
	}

	switch block.Kind {
	case content.KindCode:
		switch msg.Recipient {
		case "web":
			return base + " (tool call)"
		case "web.run":
			return base + " (tool execution)"
		}
	case content.KindThoughts:
		return base + " (thinking)"
	case content.KindReasoningRecap:
		return base + " (reasoning summary)"
	case content.KindUserContext:
		return "System (context)"
	}

	return base
}

type frontmatter struct {
	Title   string   `yaml:"title"`
	Created string   `yaml:"created,omitempty"`
	Updated string   `yaml:"updated,omitempty"`
	Tags    []string `yaml:"tags"`
}

// Frontmatter renders the YAML frontmatter block for a conversation,
// including the trailing delimiter line.
func Frontmatter(conv *export.Conversation) string {
	fm := frontmatter{
		Title: DisplayTitle(conv),
		Tags:  []string{"chatgpt", "conversation"},
	}
	if t, ok := conv.CreatedAt(); ok {
		fm.Created = t.Format(timestampLayout)
	}
	if t, ok := conv.UpdatedAt(); ok {
		fm.Updated = t.Format(timestampLayout)
	}

	body, err := yaml.Marshal(fm)
	if err != nil {
		return ""
	}
	return "---\n" + string(body) + "---\n\n"
}

// Conversation renders a full conversation to markdown and returns the
// document plus the relative paths of attachments copied along the way.
// env.DestFile must already point at the markdown file's final location.
func Conversation(conv *export.Conversation, env content.Env) (string, []string) {
	cfg := env.Config

	msgs := conv.Mapping.Messages()
	SortMessages(msgs)

	var b strings.Builder
	var attachments []string

	if cfg.UseFrontmatter {
		b.WriteString(Frontmatter(conv))
	}

	b.WriteString("# " + DisplayTitle(conv) + "\n\n")

	if cfg.IncludeDate && len(msgs) > 0 {
		if t, ok := export.EpochTime(msgs[0].CreateTime); ok {
			b.WriteString(fmt.Sprintf("<sub>%s</sub>\n\n", t.Format(cfg.DateFormat)))
		}
	}

	b.WriteString("---\n\n")

	for _, msg := range msgs {
		if msg.Author.Role == "system" {
			continue
		}

		block := content.Classify(msg.Content)
		text, copied := content.ExtractBlock(block, env)
		attachments = append(attachments, copied...)

		if cfg.SkipEmptyMessages && strings.TrimSpace(text) == "" {
			continue
		}

		label := AuthorLabel(msg, block, cfg)
		b.WriteString(fmt.Sprintf("**%s**\n\n%s%s", label, text, cfg.MessageSeparator))
	}

	return b.String(), attachments
}
