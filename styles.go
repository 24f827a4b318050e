package main

import "github.com/charmbracelet/lipgloss"

var (
	// ============================================================================
	// LAYOUT STYLES
	// ============================================================================

	// docStyle indents every field block
	docStyle = lipgloss.NewStyle().Margin(0, 2)

	// titleStyle styles the studio title at the top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	// ============================================================================
	// FIELD STYLES
	// ============================================================================

	// labelStyle names a field that does not have focus
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			MarginTop(1)

	// focusedLabelStyle names the field receiving keys
	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(lipgloss.Color("203"))

	// ============================================================================
	// STATUS STYLES
	// ============================================================================

	// statusStyle is the key hint line at the bottom
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	// errorStyle replaces the hint line when something failed
	errorStyle = statusStyle.Foreground(lipgloss.Color("203"))

	// panelStyle frames the field status above the hint line
	panelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)
