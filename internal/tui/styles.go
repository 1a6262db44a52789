package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("33")
	colorMuted  = lipgloss.Color("241")
	colorFaint  = lipgloss.Color("240")
	colorOK     = lipgloss.Color("82")
	colorBad    = lipgloss.Color("196")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(colorAccent).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 2)

	errorStyle   = lipgloss.NewStyle().Foreground(colorBad)
	successStyle = lipgloss.NewStyle().Foreground(colorOK)

	// Entry rows are tinted by the side they post to.
	debitStyle  = lipgloss.NewStyle().Foreground(colorOK)
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("209"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorFaint)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorFaint)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2)
)
