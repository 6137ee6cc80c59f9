package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/attach"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
)

// Env carries the per-run context the extractor needs to resolve and copy
// attachments. DestFile is the markdown file being written, so embed
// paths come out relative to its directory.
type Env struct {
	ExportRoot string
	OutputRoot string
	DestFile   string
	Config     *config.Config
}

// Extract renders one message's content block to markdown text and
// returns the relative paths of any attachments it copied. Unknown
// shapes degrade to empty output; Extract never fails.
func Extract(msg *export.Message, env Env) (string, []string) {
	block := Classify(msg.Content)
	return ExtractBlock(block, env)
}

// ExtractBlock renders an already-classified block.
func ExtractBlock(block Block, env Env) (string, []string) {
	cfg := env.Config

	switch block.Kind {
	case KindParts:
		return processParts(block.Parts, env)

	case KindReasoningRecap:
		text := block.Text
		if text == "" {
			text = "Reasoning completed"
		}
		if cfg.UseObsidianCallouts {
			return callout("note", "Reasoning", text), nil
		}
		return "*" + text + "*", nil

	case KindThoughts:
		var lines []string
		for _, t := range block.Thoughts {
			summary := t.Summary
			if summary == "" {
				summary = "Thought"
			}
			lines = append(lines, fmt.Sprintf("**%s**: %s", summary, t.Content))
		}
		joined := strings.Join(lines, "\n")
		if cfg.UseObsidianCallouts {
			return callout("note", "Thinking", joined), nil
		}
		return joined, nil

	case KindUserContext:
		text := strings.TrimSpace(fmt.Sprintf("*User Context*:\n%s\n%s", block.Profile, block.Instructions))
		if cfg.UseObsidianCallouts {
			body := strings.TrimSpace(block.Profile + "\n" + block.Instructions)
			return callout("abstract", "User Context", body), nil
		}
		return text, nil

	case KindCode:
		return fmt.Sprintf("```%s\n%s\n```", block.Language, block.Text), nil

	case KindText, KindResult:
		return block.Text, nil

	default:
		return block.Text, nil
	}
}

// processParts walks a parts list in order, emitting one content piece
// per recognized part. Pieces join with newlines; order is the input
// order. Unresolvable asset pointers contribute nothing.
func processParts(parts []Part, env Env) (string, []string) {
	var pieces []string
	var attachments []string

	for _, p := range parts {
		switch p.Kind {
		case PartText, PartVerbatim:
			pieces = append(pieces, p.Text)

		case PartImage:
			rel, ok := resolveAndCopy(p.Pointer, env, "")
			if ok {
				pieces = append(pieces, fmt.Sprintf("![%s](%s)", path.Base(rel), rel))
				attachments = append(attachments, rel)
			}

		case PartAudio:
			duration := p.Duration()
			rel, ok := resolveAndCopy(p.Pointer, env, attach.KindAudio)
			if ok {
				line := fmt.Sprintf(`<audio controls src="%s"></audio>`, rel)
				if duration > 0 {
					line += fmt.Sprintf(" *(%.1fs)*", duration)
				}
				pieces = append(pieces, line)
				attachments = append(attachments, rel)
			} else if duration > 0 {
				pieces = append(pieces, fmt.Sprintf("*[Audio message: %.1fs]*", duration))
			} else {
				pieces = append(pieces, "*[Audio message]*")
			}

		case PartUnrecognized:
			// dropped: dumping raw structure into output helps nobody
		}
	}

	var nonEmpty []string
	for _, piece := range pieces {
		if piece != "" {
			nonEmpty = append(nonEmpty, piece)
		}
	}
	return strings.Join(nonEmpty, "\n"), attachments
}

// resolveAndCopy finds the file behind pointer and copies it into the
// asset tree. wantKind restricts accepted files ("" accepts any kind).
func resolveAndCopy(pointer string, env Env, wantKind attach.Kind) (string, bool) {
	fileID := attach.ExtractFileID(pointer)
	if fileID == "" {
		return "", false
	}
	src, kind, ok := attach.Find(fileID, env.ExportRoot)
	if !ok {
		return "", false
	}
	if wantKind != "" && kind != wantKind {
		return "", false
	}
	return attach.Copy(src, env.OutputRoot, kind, env.Config, env.DestFile)
}

// callout renders an Obsidian folded callout with the given type and
// title, prefixing every body line with "> ".
func callout(kind, title, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "> [!%s]- %s\n", kind, title)
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("> " + line)
	}
	return b.String()
}
