package wizard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
)

// runPlain is the non-TTY fallback: the same steps as the TUI, as plain
// line prompts on stdin/stderr.
func runPlain(defaults *config.Config) (*config.Config, error) {
	cfg := *defaults
	r := bufio.NewReader(os.Stdin)

	fmt.Fprintln(os.Stderr, "ChatGPT Conversations to Markdown — Setup")
	fmt.Fprintln(os.Stderr)

	if v, err := prompt(r, "What's your name?", cfg.UserName); err != nil {
		return nil, err
	} else if v != "" {
		cfg.UserName = v
	}

	for {
		raw, err := prompt(r, "ChatGPT export (ZIP or folder)", "")
		if err != nil {
			return nil, err
		}
		path, rerr := resolveInputPath(raw)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", rerr)
			continue
		}
		cfg.InputPath = path
		cfg.InputMode = "directory"
		break
	}

	if v, err := prompt(r, "Output directory", cfg.OutputDirectory); err != nil {
		return nil, err
	} else if v != "" {
		cfg.OutputDirectory = v
	}

	for {
		v, err := prompt(r, "Organization mode: A=flat B=category C=date D=hybrid", "D")
		if err != nil {
			return nil, err
		}
		if v == "" {
			v = "D"
		}
		mode, ok := orgModes[strings.ToUpper(v)]
		if !ok {
			fmt.Fprintln(os.Stderr, "  choose one of A, B, C or D")
			continue
		}
		cfg.OrganizationMode = mode
		break
	}

	for {
		v, err := prompt(r, "Use Obsidian formatting? (Y/N)", "Y")
		if err != nil {
			return nil, err
		}
		yes, perr := parseYesNo(v, true)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", perr)
			continue
		}
		cfg.UseFrontmatter = yes
		cfg.UseObsidianCallouts = yes
		break
	}

	return &cfg, nil
}

func prompt(r *bufio.Reader, question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(os.Stderr, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(os.Stderr, "%s: ", question)
	}
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return "", ErrCancelled
	}
	return strings.TrimSpace(line), nil
}
