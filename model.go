package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/editor"
)

// field is one labelled editor of the studio.
type field struct {
	name   string
	label  string
	editor *editor.Model
}

// model is the studio: a column of fields sharing one selection, a content
// map fed by the editors and the overlays for help and preview.
type model struct {
	config  Config
	fields  []field
	focus   int
	content map[string]string
	sel     *dom.Selection

	viewport viewport.Model
	ready    bool
	width    int

	showHelp    bool
	showPreview bool
	dirty       bool
	status      string
	errMsg      string

	watcher *fsnotify.Watcher
	// offsets holds the first viewport line of each field.
	offsets []int
}

// newModel builds the studio. Stored content wins over the configured
// initial content.
func newModel(config Config, stored map[string]string) (*model, error) {
	m := &model{
		config:  config,
		content: make(map[string]string, len(config.Fields)),
		sel:     dom.NewSelection(),
	}
	for _, fc := range config.Fields {
		initial := fc.Content
		if s, ok := stored[fc.Name]; ok {
			initial = s
		}
		ed, err := editor.New(editor.Options{
			InitialContent:  initial,
			FieldName:       fc.Name,
			OnContentChange: m.contentChanged,
			Brand:           config.Brand,
			Height:          fc.Height,
			ToolbarVisible:  config.ShowToolbar,
			Selection:       m.sel,
			HistorySize:     config.HistorySize,
		})
		if err != nil {
			return nil, fmt.Errorf("creating field %q: %w", fc.Name, err)
		}
		label := fc.Label
		if label == "" {
			label = fc.Name
		}
		m.fields = append(m.fields, field{name: fc.Name, label: label, editor: ed})
		m.content[fc.Name] = ed.Content()
	}
	if len(m.fields) > 0 {
		m.fields[0].editor.Focus()
	}
	return m, nil
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{selectionChanged}
	if m.watcher != nil {
		cmds = append(cmds, watchConfig(m.watcher, m.config.path))
	}
	return tea.Batch(cmds...)
}

// contentChanged is every editor's change callback.
func (m *model) contentChanged(content, name string) {
	if m.content[name] == content {
		return
	}
	m.content[name] = content
	m.dirty = true
}

func (m *model) focused() *field {
	if len(m.fields) == 0 {
		return nil
	}
	return &m.fields[m.focus]
}

func selectionChanged() tea.Msg { return editor.SelectionChangedMsg{} }
