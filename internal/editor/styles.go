package editor

import "github.com/charmbracelet/lipgloss"

var (
	// ============================================================================
	// TOOLBAR STYLES
	// ============================================================================

	// buttonStyle is an idle toolbar button
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	// activeButtonStyle marks a toggle that is on at the caret
	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("63"))

	// disabledButtonStyle is a button with nothing to do
	disabledButtonStyle = buttonStyle.Foreground(lipgloss.Color("240"))

	// toolbarStyle spaces the button row from the document
	toolbarStyle = lipgloss.NewStyle().MarginBottom(1)

	// ============================================================================
	// DOCUMENT STYLES
	// ============================================================================

	// frameStyle surrounds a blurred field
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	// focusedFrameStyle surrounds the field receiving keys
	focusedFrameStyle = frameStyle.BorderForeground(lipgloss.Color("205"))

	// selectionStyle paints selected text
	selectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	// caretStyle draws the caret over the character after it
	caretStyle = lipgloss.NewStyle().Reverse(true)
)
