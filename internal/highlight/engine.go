// Package highlight layers named highlight presets on top of the document:
// applying them to a selection, cycling through them and merging the spans
// they leave behind.
package highlight

import (
	"errors"
	"log/slog"

	"github.com/andybalholm/cascadia"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/format"
)

const (
	// SpanAttr flags a highlight span.
	SpanAttr = "data-rte-highlight"
	// NameAttr carries the preset name of a highlight span.
	NameAttr = "data-highlight-name"
)

var (
	spanSelector = cascadia.MustCompile("span[" + SpanAttr + "]")

	// rewriteRange performs the marker-anchored rewrite for Apply.
	rewriteRange = dom.RewriteRange
)

// IsSpan reports whether n is a highlight span.
func IsSpan(n *html.Node) bool {
	return dom.IsElement(n) && spanSelector.Match(n)
}

// SpanName returns the preset name a highlight span carries.
func SpanName(n *html.Node) string {
	name, _ := dom.GetAttr(n, NameAttr)
	return name
}

// EnclosingSpan returns the highlight span n sits in, or nil.
func EnclosingSpan(root, n *html.Node) *html.Node {
	return dom.ClosestAncestor(root, n, IsSpan)
}

// Engine applies highlight presets to one document.
type Engine struct {
	id      string
	doc     *dom.Document
	sel     *dom.Selection
	catalog []StyledHighlight
	run     format.Runner

	lastIndex int
	session   bool
	lastRange dom.Range
	hasLast   bool
}

// NewEngine returns an engine for doc. run executes the follow-up format
// commands Reset needs; it may be nil.
func NewEngine(id string, doc *dom.Document, sel *dom.Selection, catalog []StyledHighlight, run format.Runner) *Engine {
	return &Engine{
		id:        id,
		doc:       doc,
		sel:       sel,
		catalog:   catalog,
		run:       run,
		lastIndex: -1,
	}
}

// Catalog returns the presets the engine cycles through.
func (e *Engine) Catalog() []StyledHighlight {
	return e.catalog
}

// SetCatalog replaces the presets after a brand recolour.
func (e *Engine) SetCatalog(catalog []StyledHighlight) {
	e.catalog = catalog
	if e.lastIndex >= len(catalog) {
		e.lastIndex = -1
	}
}

// none returns the clearing preset.
func (e *Engine) none() StyledHighlight {
	if n := len(e.catalog); n > 0 && e.catalog[n-1].IsNone() {
		return e.catalog[n-1]
	}
	return StyledHighlight{Name: NoneName, Color: "transparent"}
}

// Apply wraps the selection in h. With selectAll the whole document is
// selected first. It reports whether the document changed; declined and
// aborted operations leave the tree and the selection as they were.
func (e *Engine) Apply(h StyledHighlight, selectAll bool) bool {
	root := e.doc.Root()
	if selectAll {
		e.sel.SelectNodeContents(root)
	}
	r, ok := e.sel.Range()
	if !ok || !e.sel.Within(root) {
		return false
	}
	if !selectAll && (!e.hasLast || !r.Equal(e.lastRange)) {
		e.session = false
	}
	if !selectAll && (r.Collapsed() || dom.IsBlank(dom.RangeText(root, r))) {
		return false
	}
	if !h.IsNone() && !e.session && e.applied(r, h) {
		return false
	}

	start, end, _ := e.sel.TextOffsets(root)
	container, err := rewriteRange(root, r, dom.Rewrite{
		Lift:    IsSpan,
		Rebuild: e.rebuild(h),
	})
	switch {
	case errors.Is(err, dom.ErrEmptyFragment):
		e.Normalize(container)
		e.sel.SelectText(root, start, end)
		return false
	case errors.Is(err, dom.ErrMarkerLost):
		slog.Warn("highlight markers lost", "editor", e.id, "highlight", h.Name)
		dom.RemoveAllMarkers(root)
		e.Normalize(container)
		e.sel.SelectText(root, start, end)
		return true
	}

	e.Normalize(container)
	e.sel.SelectText(root, start, end)
	e.lastRange, e.hasLast = e.sel.Range()
	e.session = true
	if i := indexOf(e.catalog, h.Name); i >= 0 {
		e.lastIndex = i
	}
	return true
}

// applied reports whether every meaningful character in r already carries h.
func (e *Engine) applied(r dom.Range, h StyledHighlight) bool {
	root := e.doc.Root()
	seen := false
	for _, s := range dom.TextSegments(root, r) {
		if dom.IsBlank(s.Text()) {
			continue
		}
		seen = true
		span := EnclosingSpan(root, s.Node)
		if span == nil || SpanName(span) != h.Name {
			return false
		}
	}
	return seen
}

// Cycle advances the selection to the next preset. The current preset is
// read from the first node of the selection; without one the engine moves on
// from the last preset it applied, never landing on None by wrapping.
func (e *Engine) Cycle() bool {
	if len(e.catalog) == 0 {
		return false
	}
	root := e.doc.Root()
	r, ok := e.sel.Range()
	if !ok || !e.sel.Within(root) {
		return false
	}

	current := -1
	if nodes := NodesInRange(root, r); len(nodes) > 0 {
		if span := EnclosingSpan(root, nodes[0]); span != nil {
			current = indexOf(e.catalog, SpanName(span))
		}
	}

	var next int
	if current >= 0 {
		next = (current + 1) % len(e.catalog)
	} else {
		next = (e.lastIndex + 1) % len(e.catalog)
		if e.catalog[next].IsNone() {
			next = 0
		}
	}
	return e.Apply(e.catalog[next], false)
}

// Reset clears highlighting from the selection, or from the whole document
// when nothing inside it is selected. The returned command strips the
// remaining formatting on the next frame.
func (e *Engine) Reset() (bool, tea.Cmd) {
	root := e.doc.Root()
	r, ok := e.sel.Range()
	selectAll := !ok || !e.sel.Within(root) || r.Collapsed()

	changed := e.Apply(e.none(), selectAll)
	if e.run == nil {
		return changed, nil
	}
	return changed, format.NextFrame(e.id, func() tea.Cmd {
		if selectAll {
			e.sel.SelectNodeContents(e.doc.Root())
		}
		return e.run(format.RemoveFormat, "")
	})
}

// NodesInRange returns the text nodes r touches, in document order.
func NodesInRange(root *html.Node, r dom.Range) []*html.Node {
	segs := dom.TextSegments(root, r)
	out := make([]*html.Node, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Node)
	}
	return out
}

// NewSpan creates an empty highlight span styled for h.
func NewSpan(h StyledHighlight) *html.Node {
	return dom.CreateElement("span",
		html.Attribute{Key: SpanAttr, Val: "true"},
		html.Attribute{Key: NameAttr, Val: h.Name},
		html.Attribute{Key: "style", Val: dom.FormatStyle(h.Declarations())},
	)
}

// rebuild returns the fragment rewrite for h: text is wrapped in fresh spans
// (left bare for None), existing spans are unwrapped and markers dropped.
func (e *Engine) rebuild(h StyledHighlight) func([]*html.Node) []*html.Node {
	var walk func(n *html.Node) []*html.Node
	walk = func(n *html.Node) []*html.Node {
		switch {
		case n.Type == html.TextNode:
			if n.Data == "" {
				return nil
			}
			t := dom.CreateText(n.Data)
			if h.IsNone() {
				return []*html.Node{t}
			}
			span := NewSpan(h)
			span.AppendChild(t)
			return []*html.Node{span}
		case dom.IsMarker(n):
			return nil
		case IsSpan(n):
			var out []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				out = append(out, walk(c)...)
			}
			return out
		}
		clone := dom.ShallowClone(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			for _, k := range walk(c) {
				clone.AppendChild(k)
			}
		}
		return []*html.Node{clone}
	}
	return func(frag []*html.Node) []*html.Node {
		var out []*html.Node
		for _, n := range frag {
			out = append(out, walk(n)...)
		}
		return out
	}
}
