package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/highlight"
	"github.com/zam-dot/brandstudio/internal/palette"
)

// View renders the toolbar, when visible, above the document.
func (m *Model) View() string {
	doc := m.documentView()
	if !m.toolbar {
		return doc
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.toolbarView(), doc)
}

func (m *Model) toolbarView() string {
	state := m.tracker.State()
	toggle := func(label string, on bool, st lipgloss.Style) string {
		if on {
			return activeButtonStyle.Inherit(st).Render(label)
		}
		return buttonStyle.Inherit(st).Render(label)
	}

	step := func(label string, ok bool) string {
		if ok {
			return buttonStyle.Render(label)
		}
		return disabledButtonStyle.Render(label)
	}

	colour := buttonStyle
	if c := palette.TerminalColor(m.colors.Current()); c != "" {
		colour = colour.Foreground(c)
	}
	swatch := buttonStyle
	if cat := m.highlights.Catalog(); len(cat) > 0 {
		if c := palette.TerminalColor(cat[0].Color); c != "" {
			swatch = swatch.Background(c).Foreground(palette.TerminalColor(m.brand.WithDefaults().Text))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		toggle("B", state.Bold, lipgloss.NewStyle().Bold(true)), " ",
		toggle("I", state.Italic, lipgloss.NewStyle().Italic(true)), " ",
		toggle("U", state.Underline, lipgloss.NewStyle().Underline(true)), " ",
		colour.Render("A"), " ",
		swatch.Render("H"), " ",
		buttonStyle.Render("Tx"), "  ",
		step("↶", m.history.CanUndo()), " ",
		step("↷", m.history.CanRedo()),
	)
	if m.focused {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", m.help.View(m.KeyMap))
	}
	return toolbarStyle.Render(row)
}

func (m *Model) documentView() string {
	r := &renderer{root: m.doc.Root(), ink: palette.TerminalColor(m.brand.WithDefaults().Text)}
	if rng, ok := m.sel.Range(); ok && m.sel.Within(r.root) {
		if rng.Collapsed() {
			r.caret, r.showCaret = rng.Start, m.focused
		} else {
			r.selStart, r.selEnd, _ = m.sel.TextOffsets(r.root)
		}
	}
	r.walk(r.root, lipgloss.NewStyle())
	if r.pending {
		r.out.WriteString(caretStyle.Render(" "))
	}

	frame := frameStyle
	if m.focused {
		frame = focusedFrameStyle
	}
	if m.width > 0 {
		frame = frame.Width(m.width - frame.GetHorizontalFrameSize())
	}
	if m.height > 0 {
		frame = frame.Height(m.height)
	}
	return frame.Render(r.out.String())
}

// renderer turns the document into styled terminal text.
type renderer struct {
	root *html.Node
	ink  lipgloss.Color

	selStart, selEnd int
	caret            dom.Point
	showCaret        bool
	pending          bool

	pos int
	out strings.Builder
}

func (r *renderer) walk(n *html.Node, st lipgloss.Style) {
	i := 0
	for c := n.FirstChild; ; c = c.NextSibling {
		if r.showCaret && r.caret.Node == n && r.caret.Offset == i {
			r.pending = true
		}
		if c == nil {
			return
		}
		i++
		switch {
		case c.Type == html.TextNode:
			r.text(c, st)
		case dom.IsMarker(c):
		case dom.IsElement(c, "br"):
			r.newline()
		case dom.IsElement(c, "p", "div"):
			if r.out.Len() > 0 && !strings.HasSuffix(r.out.String(), "\n") {
				r.newline()
			}
			r.walk(c, r.styleFor(c, st))
		case c.Type == html.ElementNode:
			r.walk(c, r.styleFor(c, st))
		}
	}
}

func (r *renderer) text(t *html.Node, st lipgloss.Style) {
	for off, ch := range t.Data {
		if r.showCaret && r.caret.Node == t && r.caret.Offset == off {
			r.pending = true
		}
		s := st
		switch {
		case r.pending:
			s = caretStyle.Inherit(st)
			r.pending = false
		case r.pos >= r.selStart && r.pos < r.selEnd:
			s = selectionStyle.Inherit(st)
		}
		if ch == '\n' || ch == '\t' {
			ch = ' '
		}
		r.out.WriteString(s.Render(string(ch)))
		r.pos++
	}
	if r.showCaret && r.caret.Node == t && r.caret.Offset >= len(t.Data) {
		r.pending = true
	}
}

func (r *renderer) newline() {
	if r.pending {
		r.out.WriteString(caretStyle.Render(" "))
		r.pending = false
	}
	r.out.WriteString("\n")
}

// styleFor layers the formatting of element n onto st.
func (r *renderer) styleFor(n *html.Node, st lipgloss.Style) lipgloss.Style {
	switch n.Data {
	case "b", "strong":
		return st.Bold(true)
	case "i", "em":
		return st.Italic(true)
	case "u", "a":
		return st.Underline(true)
	case "s", "strike":
		return st.Strikethrough(true)
	case "font":
		if v, ok := dom.GetAttr(n, "color"); ok {
			if c := palette.TerminalColor(v); c != "" {
				st = st.Foreground(c)
			}
		}
		return st
	case "span":
		if !highlight.IsSpan(n) {
			return st
		}
		css := dom.StyleOf(n)
		bg := palette.TerminalColor(css["background-color"])
		if bg == "" {
			bg = palette.TerminalColor(css["background-image"])
		}
		if bg != "" {
			st = st.Background(bg)
			if _, unset := st.GetForeground().(lipgloss.NoColor); unset && r.ink != "" {
				st = st.Foreground(r.ink)
			}
		}
		if css["border-bottom"] != "" || strings.Contains(css["text-decoration"], "underline") {
			st = st.Underline(true)
		}
		return st
	}
	return st
}
