package main

import tea "github.com/charmbracelet/bubbletea"

// focusField moves keyboard focus to field i. The field losing focus reports
// its final content on blur.
func (m *model) focusField(i int) tea.Cmd {
	if len(m.fields) == 0 || i == m.focus {
		return nil
	}
	m.fields[m.focus].editor.Blur()
	m.focus = i
	m.fields[m.focus].editor.Focus()
	m.scrollToFocus()
	return selectionChanged
}

func (m *model) nextField() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	return m.focusField((m.focus + 1) % len(m.fields))
}

func (m *model) prevField() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	return m.focusField((m.focus - 1 + len(m.fields)) % len(m.fields))
}

// scrollToFocus brings the focused field's first line into view.
func (m *model) scrollToFocus() {
	if !m.ready || m.focus >= len(m.offsets) {
		return
	}
	top := m.offsets[m.focus]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
}
