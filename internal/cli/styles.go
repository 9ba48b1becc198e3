package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dateStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
