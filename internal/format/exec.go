package format

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Focuser is implemented by the editable region so a command can hand focus
// back to it.
type Focuser interface {
	Focus()
}

// Runner runs a format command through the editor and returns the deferred
// work that follows it.
type Runner func(cmd Command, value string) tea.Cmd

// FrameMsg carries work deferred to the next update cycle, after the command
// that scheduled it has finished mutating the document.
type FrameMsg struct {
	ID string
	fn func() tea.Cmd
}

// Run performs the deferred work.
func (m FrameMsg) Run() tea.Cmd {
	if m.fn == nil {
		return nil
	}
	return m.fn()
}

// NextFrame schedules fn for the next update addressed to id.
func NextFrame(id string, fn func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg{ID: id, fn: fn}
	}
}

// ExecFormatCommand runs cmd, refocuses the editable region and schedules
// after for the next frame. Command failures are logged, never returned, so
// the follow-up still runs.
func ExecFormatCommand(c Commander, f Focuser, id string, cmd Command, value string, after func() tea.Cmd) tea.Cmd {
	if err := c.Exec(cmd, value); err != nil {
		slog.Warn("format command failed", "command", string(cmd), "value", value, "err", err)
	}
	if f != nil {
		f.Focus()
	}
	return NextFrame(id, after)
}
