package wizard

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorError     = lipgloss.Color("9")   // bright red
	colorBorder    = lipgloss.Color("238") // dark gray

	styleHeader = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	styleQuestion = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleHint = lipgloss.NewStyle().
			Foreground(colorDim)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
