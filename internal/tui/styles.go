package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	styleUser = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	styleAssistant = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePrompt = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))
)
