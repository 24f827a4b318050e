package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
)

// configChangedMsg carries a config file that changed on disk.
type configChangedMsg struct {
	config Config
}

// statusMsg is a one-line notice for the status bar.
type statusMsg string

// errorMsg reports a failure of a background command.
type errorMsg struct {
	err error
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	case configChangedMsg:
		cmd = m.handleConfigChanged(msg)
	case configErrorMsg:
		m.setError(msg.err.Error())
		if m.watcher != nil {
			cmd = watchConfig(m.watcher, m.config.path)
		}
	case statusMsg:
		m.setStatus(string(msg))
	case errorMsg:
		m.setError(msg.err.Error())
	default:
		cmd = m.broadcast(msg)
	}

	m.refresh()
	return m, cmd
}

// broadcast hands msg to every editor. Each editor ignores what is not
// addressed to it.
func (m *model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for _, f := range m.fields {
		cmds = append(cmds, f.editor.Update(msg))
	}
	return tea.Batch(cmds...)
}

// Handle key messages
func (m *model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.handleQuit()

	case "esc":
		m.showHelp = false
		m.showPreview = false
		return nil

	case "f1":
		m.showHelp = !m.showHelp
		m.showPreview = false
		return nil

	case "ctrl+p":
		m.showPreview = !m.showPreview
		m.showHelp = false
		return nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if m.showHelp || m.showPreview {
		return nil
	}

	switch msg.String() {
	case "tab":
		return m.nextField()

	case "shift+tab":
		return m.prevField()

	case "ctrl+s":
		return m.handleSave()

	case "ctrl+o":
		return m.handleCopy(true)

	case "ctrl+t":
		return m.handleCopy(false)
	}

	if f := m.focused(); f != nil {
		return f.editor.Update(msg)
	}
	return nil
}

func (m *model) handleQuit() tea.Cmd {
	if f := m.focused(); f != nil {
		f.editor.Blur()
	}
	for _, f := range m.fields {
		f.editor.Unmount()
	}
	if m.config.SaveOnQuit && m.dirty {
		if err := m.save(); err != nil {
			slog.Error("content lost on quit", "err", err)
		}
	}
	return tea.Quit
}

func (m *model) handleSave() tea.Cmd {
	if err := m.save(); err != nil {
		m.setError(err.Error())
		return nil
	}
	m.setStatus(fmt.Sprintf("Saved %d fields to %s", len(m.content), m.config.StoreFile))
	return nil
}

// handleCopy puts the focused field on the clipboard, as scoped markup or as
// plain text.
func (m *model) handleCopy(markup bool) tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	if !markup {
		return copyToClipboard(f.label+" text", exportText(f.editor))
	}
	out, err := exportMarkup(f.editor)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return copyToClipboard(f.label+" markup", out)
}

// Message handlers
func (m *model) handleWindowSize(msg tea.WindowSizeMsg) {
	headerHeight := 2
	footerHeight := 1
	if m.config.ShowStatusPanel {
		footerHeight += 2
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
	}

	m.width = msg.Width
	for _, f := range m.fields {
		f.editor.SetWidth(msg.Width - docStyle.GetHorizontalFrameSize())
	}
}

// handleConfigChanged recolours every field with the reloaded brand and keeps
// watching the file.
func (m *model) handleConfigChanged(msg configChangedMsg) tea.Cmd {
	brand := msg.config.Brand != m.config.Brand
	if brand {
		m.config.Brand = msg.config.Brand
		for _, f := range m.fields {
			f.editor.SetBrand(msg.config.Brand)
		}
		slog.Info("brand reloaded", "file", m.config.path)
	}
	fields := m.reloadFields(msg.config.Fields)

	switch {
	case brand && fields:
		m.setStatus("Brand and fields reloaded")
	case brand:
		m.setStatus("Brand reloaded")
	case fields:
		m.setStatus("Fields reloaded")
	}
	if m.watcher == nil {
		return nil
	}
	return watchConfig(m.watcher, m.config.path)
}

// reloadFields applies reloaded field settings by name and reports whether
// any field changed. Heights always follow the file; new content only
// replaces a field still showing the content configured before.
func (m *model) reloadFields(fields []FieldConfig) bool {
	changed := false
	for i := range m.config.Fields {
		old := &m.config.Fields[i]
		fc, ok := findField(fields, old.Name)
		if !ok {
			continue
		}
		ed := m.fields[i].editor
		if fc.Height != old.Height {
			ed.SetHeight(fc.Height)
			old.Height = fc.Height
			changed = true
		}
		if fc.Content == old.Content {
			continue
		}
		if canon, err := dom.Canonical(old.Content); err != nil || canon != ed.Content() {
			continue
		}
		if err := ed.SetContent(fc.Content); err != nil {
			m.setError(fmt.Sprintf("reloading %s: %v", fc.Name, err))
			continue
		}
		old.Content = fc.Content
		m.contentChanged(ed.Content(), fc.Name)
		slog.Info("field content reloaded", "field", fc.Name)
		changed = true
	}
	return changed
}

func findField(fields []FieldConfig, name string) (FieldConfig, bool) {
	for _, fc := range fields {
		if fc.Name == name {
			return fc, true
		}
	}
	return FieldConfig{}, false
}

func (m *model) setStatus(s string) {
	m.status = s
	m.errMsg = ""
}

func (m *model) setError(s string) {
	m.errMsg = s
	if s != "" {
		slog.Warn("studio error", "err", s)
	}
}
