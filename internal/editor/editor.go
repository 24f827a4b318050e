// Package editor is the rich-text editor component: a bubbletea sub-model
// that wires the document, the format executor, the highlight engine, the
// text colour cycler and the undo history to the keyboard.
package editor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/format"
	"github.com/zam-dot/brandstudio/internal/highlight"
	"github.com/zam-dot/brandstudio/internal/history"
	"github.com/zam-dot/brandstudio/internal/palette"
	"github.com/zam-dot/brandstudio/internal/textcolor"
)

// Options configure a new editor.
type Options struct {
	InitialContent string
	FieldName      string
	// OnContentChange receives the serialised content after every committed
	// edit, on blur and after each format or highlight operation.
	OnContentChange func(content, field string)
	Brand           palette.Brand
	Height          int
	Width           int
	ToolbarVisible  bool
	// Selection is shared by every editor of a program. A private one is
	// created when nil.
	Selection   *dom.Selection
	HistorySize int
}

// SelectionChangedMsg tells editors the shared selection moved.
type SelectionChangedMsg struct{}

type historyTickMsg struct {
	id  string
	seq uint64
}

type formatTickMsg struct {
	id  string
	seq uint64
}

type replayDoneMsg struct {
	id string
}

// Model is one editable field.
type Model struct {
	KeyMap KeyMap

	id        string
	field     string
	onChange  func(content, field string)
	brand     palette.Brand
	height    int
	width     int
	toolbar   bool
	focused   bool
	unmounted bool

	doc        *dom.Document
	sel        *dom.Selection
	exec       *format.Executor
	tracker    *format.Tracker
	history    *history.History
	highlights *highlight.Engine
	colors     *textcolor.Cycler
	help       help.Model

	// anchor and head are the fixed and moving ends of a keyboard
	// selection, in runes.
	anchor, head int
}

// New builds an editor from opts.
func New(opts Options) (*Model, error) {
	doc, err := dom.NewDocument(opts.InitialContent)
	if err != nil {
		return nil, fmt.Errorf("editor %q: %w", opts.FieldName, err)
	}
	sel := opts.Selection
	if sel == nil {
		sel = dom.NewSelection()
	}
	m := &Model{
		KeyMap:   DefaultKeyMap(),
		id:       dom.GenerateUniqueID("editor"),
		field:    opts.FieldName,
		onChange: opts.OnContentChange,
		brand:    opts.Brand,
		height:   opts.Height,
		width:    opts.Width,
		toolbar:  opts.ToolbarVisible,
		doc:      doc,
		sel:      sel,
		help:     help.New(),
	}
	m.exec = format.NewExecutor(doc, sel)
	m.tracker = format.NewTracker(m.exec)
	m.history = history.New(doc.HTML(), opts.HistorySize)
	m.highlights = highlight.NewEngine(m.id, doc, sel, highlight.Catalog(opts.Brand), m.run)
	m.exec.SetNormalizer(m.highlights.Normalize)
	m.colors = textcolor.New(doc, sel, opts.Brand, m.run)
	m.help.Width = opts.Width
	return m, nil
}

// ID returns the editor's unique id.
func (m *Model) ID() string { return m.id }

// FieldName returns the host's field identifier.
func (m *Model) FieldName() string { return m.field }

// Content returns the serialised document.
func (m *Model) Content() string { return m.doc.HTML() }

// Text returns the document's text content.
func (m *Model) Text() string { return m.doc.Text() }

// Document exposes the underlying document.
func (m *Model) Document() *dom.Document { return m.doc }

// History exposes the undo buffer.
func (m *Model) History() *history.History { return m.history }

// FormattingState returns the toggles active at the caret.
func (m *Model) FormattingState() format.State { return m.tracker.State() }

// TextColor returns the colour the cycler applied last.
func (m *Model) TextColor() string { return m.colors.Current() }

// Focused reports whether the editor receives keys.
func (m *Model) Focused() bool { return m.focused }

// ScopeClass is the CSS class scoping this editor's stylesheet.
func (m *Model) ScopeClass() string { return "rte-scope-" + m.id }

// Stylesheet keeps links and coloured fonts inside highlight spans from
// painting their own colour or background over the highlight.
func (m *Model) Stylesheet() string {
	span := fmt.Sprintf(".%s span[%s]", m.ScopeClass(), highlight.SpanAttr)
	return fmt.Sprintf("%[1]s a, %[1]s font[color] { color: inherit !important; background: inherit !important; }\n"+
		"%[1]s { -webkit-box-decoration-break: clone; box-decoration-break: clone; }\n", span)
}

// SetWidth sets the rendering width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.help.Width = w
}

// SetHeight sets the minimum height of the editable area.
func (m *Model) SetHeight(h int) { m.height = h }

// SetToolbarVisible shows or hides the toolbar.
func (m *Model) SetToolbarVisible(v bool) { m.toolbar = v }

// Focus makes the editor receive keys. A caret is placed at the end when the
// selection lives elsewhere.
func (m *Model) Focus() {
	m.focused = true
	if root := m.doc.Root(); !m.sel.Within(root) {
		m.collapseTo(dom.TextLength(root), false)
	}
}

// Blur stops key delivery and reports the final content.
func (m *Model) Blur() {
	if !m.focused {
		return
	}
	m.focused = false
	m.notify(m.Content())
}

// SetContent re-injects external content when it differs from the document.
func (m *Model) SetContent(markup string) error {
	canon, err := dom.Canonical(markup)
	if err != nil {
		return err
	}
	if canon == m.Content() {
		return nil
	}
	root := m.doc.Root()
	start, end, inside := m.sel.TextOffsets(root)
	if err := m.doc.SetHTML(markup); err != nil {
		return err
	}
	if inside {
		m.sel.SelectText(root, start, end)
	}
	return nil
}

// SetBrand recolours the highlight catalog and the text palette.
func (m *Model) SetBrand(b palette.Brand) {
	m.brand = b
	m.highlights.SetCatalog(highlight.Catalog(b))
	m.colors.SetBrand(b)
}

// Unmount cancels every pending timer. Messages arriving afterwards are
// ignored.
func (m *Model) Unmount() {
	m.history.Cancel()
	m.tracker.Cancel()
	m.unmounted = true
}

// Update handles keys for a focused editor and the timer, frame and replay
// messages addressed to it. Messages for other editors are ignored, so a host
// may broadcast.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.unmounted {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	case historyTickMsg:
		if msg.id == m.id {
			m.history.Commit(msg.seq)
		}
	case formatTickMsg:
		if msg.id == m.id {
			m.tracker.Fire(msg.seq)
		}
	case replayDoneMsg:
		if msg.id == m.id {
			m.history.EndReplay()
		}
	case format.FrameMsg:
		if msg.ID == m.id {
			return msg.Run()
		}
	case SelectionChangedMsg:
		return m.selectionChanged()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := m.KeyMap
	switch {
	case key.Matches(msg, km.Undo):
		return m.undo()
	case key.Matches(msg, km.Redo):
		return m.redo()
	case key.Matches(msg, km.Bold):
		return m.run(format.Bold, "")
	case key.Matches(msg, km.Italic):
		return m.run(format.Italic, "")
	case key.Matches(msg, km.Underline):
		return m.run(format.Underline, "")
	case key.Matches(msg, km.TextColor):
		return m.colors.Cycle()
	case key.Matches(msg, km.Highlight):
		return m.cycleHighlight()
	case key.Matches(msg, km.Reset):
		return m.resetFormatting()
	case key.Matches(msg, km.SelectAll):
		return m.selectAll()
	case key.Matches(msg, km.Left):
		return m.step(-1, false)
	case key.Matches(msg, km.Right):
		return m.step(1, false)
	case key.Matches(msg, km.SelectLeft):
		return m.step(-1, true)
	case key.Matches(msg, km.SelectRight):
		return m.step(1, true)
	case key.Matches(msg, km.Home):
		return m.jump(0, false)
	case key.Matches(msg, km.End):
		return m.jump(dom.TextLength(m.doc.Root()), false)
	case key.Matches(msg, km.SelectHome):
		return m.jump(0, true)
	case key.Matches(msg, km.SelectEnd):
		return m.jump(dom.TextLength(m.doc.Root()), true)
	case key.Matches(msg, km.Backspace):
		return m.deleteBackward()
	case key.Matches(msg, km.Delete):
		return m.deleteForward()
	case key.Matches(msg, km.InsertNewline):
		return m.insertBreak()
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return m.insert(string(msg.Runes))
	case tea.KeySpace:
		return m.insert(" ")
	}
	return nil
}

// run is the format command path shared by the toolbar, the shortcuts, the
// highlight engine and the colour cycler.
func (m *Model) run(cmd format.Command, value string) tea.Cmd {
	return format.ExecFormatCommand(m.exec, m, m.id, cmd, value, m.afterCommand)
}

func (m *Model) afterCommand() tea.Cmd {
	m.tracker.Update()
	return m.contentChanged()
}

func (m *Model) cycleHighlight() tea.Cmd {
	if !m.highlights.Cycle() {
		return nil
	}
	return tea.Batch(m.contentChanged(), m.scheduleFormatCheck())
}

func (m *Model) resetFormatting() tea.Cmd {
	changed, follow := m.highlights.Reset()
	if !changed {
		return follow
	}
	return tea.Batch(m.contentChanged(), follow)
}

func (m *Model) notify(content string) {
	if m.onChange != nil {
		m.onChange(content, m.field)
	}
}

// contentChanged reports the content to the host and stages it for the
// history.
func (m *Model) contentChanged() tea.Cmd {
	content := m.Content()
	m.notify(content)
	seq, ok := m.history.Stage(content)
	if !ok {
		return nil
	}
	id := m.id
	return tea.Tick(history.Debounce, func(time.Time) tea.Msg {
		return historyTickMsg{id: id, seq: seq}
	})
}

func (m *Model) scheduleFormatCheck() tea.Cmd {
	seq, ok := m.tracker.Schedule()
	if !ok {
		return nil
	}
	id := m.id
	return tea.Tick(format.Throttle, func(time.Time) tea.Msg {
		return formatTickMsg{id: id, seq: seq}
	})
}

func (m *Model) selectionChanged() tea.Cmd {
	if !m.sel.Within(m.doc.Root()) {
		return nil
	}
	return m.scheduleFormatCheck()
}

func (m *Model) undo() tea.Cmd {
	content, ok := m.history.Undo()
	if !ok {
		return nil
	}
	return m.replay(content)
}

func (m *Model) redo() tea.Cmd {
	content, ok := m.history.Redo()
	if !ok {
		return nil
	}
	return m.replay(content)
}

// replay writes a history entry back into the document. Replay mode ends on
// the next message, after the write has been reported.
func (m *Model) replay(content string) tea.Cmd {
	if err := m.doc.SetHTML(content); err != nil {
		slog.Warn("history replay failed", "editor", m.id, "err", err)
		m.history.EndReplay()
		return nil
	}
	m.collapseTo(dom.TextLength(m.doc.Root()), false)
	m.notify(m.Content())
	id := m.id
	return tea.Batch(
		func() tea.Msg { return replayDoneMsg{id: id} },
		m.scheduleFormatCheck(),
	)
}
