package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
)

// offsets returns the selection in runes, first putting a caret at the end
// of the document when the selection is somewhere else.
func (m *Model) offsets() (start, end int) {
	root := m.doc.Root()
	if s, e, ok := m.sel.TextOffsets(root); ok {
		return s, e
	}
	n := dom.TextLength(root)
	m.collapseTo(n, false)
	return n, n
}

// collapseTo places a caret at rune offset at. forward leans the caret into
// the following text node when at falls on a node boundary.
func (m *Model) collapseTo(at int, forward bool) {
	m.sel.Collapse(dom.PointAtOffset(m.doc.Root(), at, forward))
	m.anchor, m.head = at, at
}

// syncAnchor resets the keyboard anchor when the selection was changed by
// something other than the keyboard.
func (m *Model) syncAnchor(start, end int) {
	if min(m.anchor, m.head) != start || max(m.anchor, m.head) != end {
		m.anchor, m.head = start, end
	}
}

// extendTo moves the head of a keyboard selection to at.
func (m *Model) extendTo(at int) {
	m.syncAnchor(m.offsets())
	m.head = at
	if m.anchor == m.head {
		m.collapseTo(at, false)
		return
	}
	m.sel.SelectText(m.doc.Root(), min(m.anchor, m.head), max(m.anchor, m.head))
}

func (m *Model) step(delta int, extend bool) tea.Cmd {
	s, e := m.offsets()
	n := dom.TextLength(m.doc.Root())
	if extend {
		m.syncAnchor(s, e)
		m.extendTo(clamp(m.head+delta, 0, n))
		return m.selectionChanged()
	}
	at := clamp(s+delta, 0, n)
	switch {
	case s != e && delta < 0:
		at = s
	case s != e && delta > 0:
		at = e
	}
	m.collapseTo(at, delta < 0)
	return m.selectionChanged()
}

func (m *Model) jump(at int, extend bool) tea.Cmd {
	if extend {
		m.extendTo(at)
	} else {
		m.collapseTo(at, at == 0)
	}
	return m.selectionChanged()
}

func (m *Model) selectAll() tea.Cmd {
	root := m.doc.Root()
	m.sel.SelectNodeContents(root)
	m.anchor, m.head = 0, dom.TextLength(root)
	return m.selectionChanged()
}

func (m *Model) insert(text string) tea.Cmd {
	m.offsets()
	r, _ := m.sel.Range()
	at := dom.InsertText(m.doc.Root(), r, text)
	m.collapseTo(at, false)
	return m.edited()
}

func (m *Model) insertBreak() tea.Cmd {
	root := m.doc.Root()
	m.offsets()
	r, _ := m.sel.Range()
	p := r.Start
	if !r.Collapsed() {
		p = dom.PointAtOffset(root, dom.DeleteContents(root, r), false)
	}
	br := dom.CreateElement("br")
	dom.InsertAt(p, br)
	m.sel.Collapse(dom.Point{Node: br.Parent, Offset: dom.Index(br) + 1})
	return m.edited()
}

func (m *Model) deleteBackward() tea.Cmd {
	root := m.doc.Root()
	s, e := m.offsets()
	r, _ := m.sel.Range()
	switch {
	case s != e:
		m.collapseTo(dom.DeleteContents(root, r), false)
	case dom.DeleteVoidBefore(r.Start):
		m.collapseTo(s, false)
	case s > 0:
		m.collapseTo(dom.DeleteContents(root, dom.RangeAtOffsets(root, s-1, s)), false)
	default:
		return nil
	}
	return m.edited()
}

func (m *Model) deleteForward() tea.Cmd {
	root := m.doc.Root()
	s, e := m.offsets()
	r, _ := m.sel.Range()
	switch {
	case s != e:
		m.collapseTo(dom.DeleteContents(root, r), false)
	case dom.DeleteVoidAfter(r.Start):
		m.collapseTo(s, true)
	case s < dom.TextLength(root):
		m.collapseTo(dom.DeleteContents(root, dom.RangeAtOffsets(root, s, s+1)), false)
	default:
		return nil
	}
	return m.edited()
}

// edited tidies the tree after a keystroke changed it and reports the change.
// The caret survives by offset when tidying detached its node.
func (m *Model) edited() tea.Cmd {
	root := m.doc.Root()
	s, e, _ := m.sel.TextOffsets(root)
	m.highlights.Normalize(root)
	if !m.sel.Within(root) {
		m.sel.SelectText(root, s, e)
	}
	return tea.Batch(m.contentChanged(), m.scheduleFormatCheck())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
