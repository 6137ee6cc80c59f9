// Package wizard gathers the run configuration interactively: user name,
// export location (ZIP archives are extracted on the spot), output
// directory, organization mode and Obsidian formatting. Remaining keys
// take their documented defaults.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
)

// ErrCancelled is returned when the user aborts setup.
var ErrCancelled = errors.New("setup cancelled")

type step int

const (
	stepUserName step = iota
	stepInputPath
	stepOutputDir
	stepOrgMode
	stepObsidian
	stepDone
)

var orgModes = map[string]string{
	"A": "flat",
	"B": "category",
	"C": "date",
	"D": "hybrid",
}

// Run walks the user through setup and returns the resulting config.
// When stdin is not a terminal it falls back to plain line prompts so
// scripted input still works.
func Run(defaults *config.Config) (*config.Config, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPlain(defaults)
	}

	m := initialModel(defaults)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	fm := finalModel.(model)
	if fm.cancelled {
		return nil, ErrCancelled
	}
	return fm.cfg, nil
}

type keyMap struct {
	Confirm key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

type model struct {
	cfg       *config.Config
	step      step
	input     textinput.Model
	errMsg    string
	cancelled bool
}

func initialModel(defaults *config.Config) model {
	cfg := *defaults

	ti := textinput.New()
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 512
	ti.Placeholder = cfg.UserName

	return model{cfg: &cfg, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, keys.Confirm):
			return m.confirm()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// confirm validates the current answer and advances to the next step.
func (m model) confirm() (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input.Value())
	m.errMsg = ""

	switch m.step {
	case stepUserName:
		if answer != "" {
			m.cfg.UserName = answer
		}

	case stepInputPath:
		path, err := resolveInputPath(answer)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.cfg.InputPath = path
		m.cfg.InputMode = "directory"

	case stepOutputDir:
		if answer != "" {
			m.cfg.OutputDirectory = answer
		}

	case stepOrgMode:
		choice := strings.ToUpper(answer)
		if choice == "" {
			choice = "D"
		}
		mode, ok := orgModes[choice]
		if !ok {
			m.errMsg = "choose one of A, B, C or D"
			return m, nil
		}
		m.cfg.OrganizationMode = mode

	case stepObsidian:
		yes, err := parseYesNo(answer, true)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.cfg.UseFrontmatter = yes
		m.cfg.UseObsidianCallouts = yes
	}

	m.step++
	m.input.SetValue("")
	m.input.Placeholder = m.placeholder()
	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) placeholder() string {
	switch m.step {
	case stepUserName:
		return m.cfg.UserName
	case stepOutputDir:
		return m.cfg.OutputDirectory
	case stepOrgMode:
		return "D"
	case stepObsidian:
		return "Y"
	}
	return ""
}

func (m model) View() string {
	if m.step == stepDone || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("ChatGPT Conversations to Markdown — Setup") + "\n\n")
	b.WriteString(styleQuestion.Render(m.question()) + "\n")
	if hint := m.hint(); hint != "" {
		b.WriteString(styleHint.Render(hint) + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")
	if m.errMsg != "" {
		b.WriteString("\n" + styleError.Render("✗ "+m.errMsg) + "\n")
	}
	b.WriteString("\n" + styleHint.Render("enter confirm · esc cancel") + "\n")
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m model) question() string {
	switch m.step {
	case stepUserName:
		return "What's your name?"
	case stepInputPath:
		return "Where is your ChatGPT export? (ZIP file or extracted folder)"
	case stepOutputDir:
		return "Where should markdown files be saved?"
	case stepOrgMode:
		return "How should conversations be organized?"
	case stepObsidian:
		return "Use Obsidian formatting? (frontmatter, callouts)"
	}
	return ""
}

func (m model) hint() string {
	switch m.step {
	case stepInputPath:
		return "ZIP archives are extracted next to the archive automatically."
	case stepOrgMode:
		return strings.Join([]string{
			"  A) flat      all files in one folder",
			"  B) category  Starred/ Archived/ Regular/",
			"  C) date      2025/01-January/ ...",
			"  D) hybrid    category + date (recommended)",
		}, "\n")
	case stepObsidian:
		return "Y/N"
	}
	return ""
}

// resolveInputPath validates the export location, extracting a ZIP
// archive when one is given.
func resolveInputPath(raw string) (string, error) {
	path := strings.Trim(raw, `"'`)
	if path == "" {
		return "", errors.New("a path is required")
	}

	if export.IsZipFile(path) {
		extracted, err := export.ExtractZip(path, "")
		if err != nil {
			return "", fmt.Errorf("extract ZIP: %w", err)
		}
		return extracted, nil
	}

	if export.IsExportDir(path) {
		return path, nil
	}

	return "", fmt.Errorf("no conversations.json or valid ZIP at %s", path)
}

func parseYesNo(answer string, def bool) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "":
		return def, nil
	case "Y", "YES":
		return true, nil
	case "N", "NO":
		return false, nil
	default:
		return false, errors.New("answer Y or N")
	}
}
