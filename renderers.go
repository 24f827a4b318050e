package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	parts := []string{m.titleView(), m.viewport.View()}
	if m.config.ShowStatusPanel {
		parts = append(parts, m.renderStatusPanel())
	}
	parts = append(parts, m.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// refresh puts the current page into the viewport and records where each
// field starts.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	switch {
	case m.showHelp:
		m.viewport.SetContent(m.renderHelp())
	case m.showPreview:
		m.viewport.SetContent(m.renderPreview())
	default:
		m.viewport.SetContent(m.renderFields())
	}
}

func (m *model) renderFields() string {
	blocks := make([]string, 0, len(m.fields))
	m.offsets = m.offsets[:0]
	line := 0
	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focus {
			label = focusedLabelStyle.Render("▸ " + f.label)
		}
		block := docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, label, f.editor.View()))
		m.offsets = append(m.offsets, line)
		line += lipgloss.Height(block)
		blocks = append(blocks, block)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m *model) titleView() string {
	title := "Brand Studio"
	if m.dirty {
		title += " •"
	}
	return titleStyle.Render(title)
}

func (m *model) statusView() string {
	line := "tab: field • ctrl+s: save • ctrl+o: copy • ctrl+p: preview • f1: help"
	style := statusStyle
	switch {
	case m.errMsg != "":
		line, style = "Error: "+m.errMsg, errorStyle
	case m.status != "":
		line = m.status
	}
	return style.Width(m.width).Render(line)
}

func (m *model) renderStatusPanel() string {
	f := m.focused()
	if f == nil {
		return ""
	}
	ed := f.editor
	state := ed.FormattingState()
	var toggles []string
	for _, t := range []struct {
		name string
		on   bool
	}{{"bold", state.Bold}, {"italic", state.Italic}, {"underline", state.Underline}} {
		if t.on {
			toggles = append(toggles, t.name)
		}
	}
	formatting := "plain"
	if len(toggles) > 0 {
		formatting = strings.Join(toggles, "+")
	}

	h := ed.History()
	left := fmt.Sprintf("Field: %s | History: %d/%d | Format: %s", f.label, h.Index()+1, len(h.Items()), formatting)
	colour := "Text colour: "
	if c := ed.TextColor(); c != "" {
		colour += lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■ ") + c
	}
	return panelStyle.Width(m.width).Render(left + "  " + colour)
}

func (m *model) renderHelp() string {
	var b strings.Builder
	b.WriteString("# Brand Studio\n\n")
	b.WriteString("Each field is a rich-text editor. Select text with shift+arrows or ctrl+a, then format it.\n\n")
	b.WriteString("## Editing\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	if f := m.focused(); f != nil {
		for _, group := range f.editor.KeyMap.FullHelp() {
			for _, k := range group {
				h := k.Help()
				fmt.Fprintf(&b, "| %s | %s |\n", h.Key, h.Desc)
			}
		}
	}
	b.WriteString("\n## Studio\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	b.WriteString("| tab / shift+tab | next / previous field |\n")
	b.WriteString("| ctrl+s | save all fields |\n")
	b.WriteString("| ctrl+o | copy the field as scoped HTML |\n")
	b.WriteString("| ctrl+t | copy the field as text |\n")
	b.WriteString("| ctrl+p | preview |\n")
	b.WriteString("| esc | close help or preview |\n")
	if m.config.path != "" && m.watcher != nil {
		fmt.Fprintf(&b, "\nThe brand colours reload when `%s` changes.\n", m.config.path)
	}
	return m.renderWithStyle(b.String())
}

func (m *model) renderPreview() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "## %s\n\n", f.label)
		if md := exportMarkdown(f.editor); md != "" {
			b.WriteString(md)
		} else {
			b.WriteString("*empty*")
		}
		b.WriteString("\n\n")
	}
	return m.renderWithStyle(b.String())
}

// renderWithStyle renders markdown with glamour, falling back to the raw
// text when rendering fails.
func (m *model) renderWithStyle(md string) string {
	width := m.width - docStyle.GetHorizontalFrameSize()
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.config.Style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
