// Package format implements the selection-based formatting primitive the
// editor builds on (bold, italic, underline, foreground colour, remove
// formatting) together with the tracker that reports which formats are active
// at the caret.
package format

import (
	"errors"
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/zam-dot/brandstudio/internal/dom"
)

// Command names a formatting operation.
type Command string

const (
	Bold         Command = "bold"
	Italic       Command = "italic"
	Underline    Command = "underline"
	ForeColor    Command = "foreColor"
	RemoveFormat Command = "removeFormat"
	SelectAll    Command = "selectAll"
)

var (
	// ErrNoSelection means there is no selection inside the document.
	ErrNoSelection = errors.New("no selection in document")
	// ErrUnsupportedCommand is returned for commands the executor lacks.
	ErrUnsupportedCommand = errors.New("unsupported format command")
	// ErrMissingValue is returned when a command needs a value.
	ErrMissingValue = errors.New("format command requires a value")
)

// toggles maps the toggle commands to the elements that express them. The
// first tag is the one new formatting is written with.
var toggles = map[Command][]string{
	Bold:      {"b", "strong"},
	Italic:    {"i", "em"},
	Underline: {"u"},
}

var colorFont = cascadia.MustCompile("font[color]")

// Commander is the native formatting primitive.
type Commander interface {
	Exec(cmd Command, value string) error
	QueryState(cmd Command) (bool, error)
}

// Executor applies commands to one document through the shared selection.
type Executor struct {
	doc *dom.Document
	sel *dom.Selection

	normalize func(*html.Node)
}

// NewExecutor returns an executor for doc.
func NewExecutor(doc *dom.Document, sel *dom.Selection) *Executor {
	return &Executor{doc: doc, sel: sel}
}

// SetNormalizer installs fn to run over the document root after every
// rewrite, before the selection is restored. Splitting an element at the
// range edges can leave fragments that fn rejoins.
func (e *Executor) SetNormalizer(fn func(root *html.Node)) {
	e.normalize = fn
}

// Exec runs cmd against the current selection. A collapsed selection is a
// no-op for every command but selectAll.
func (e *Executor) Exec(cmd Command, value string) error {
	root := e.doc.Root()
	if cmd == SelectAll {
		e.sel.SelectNodeContents(root)
		return nil
	}
	r, ok := e.sel.Range()
	if !ok || !e.sel.Within(root) {
		return ErrNoSelection
	}

	var rw dom.Rewrite
	switch cmd {
	case Bold, Italic, Underline:
		on, err := e.QueryState(cmd)
		if err != nil {
			return err
		}
		tags := toggles[cmd]
		if on {
			rw = dom.Rewrite{
				Lift:    func(n *html.Node) bool { return dom.IsElement(n, tags...) },
				Rebuild: rebuildWith(func(n *html.Node) bool { return dom.IsElement(n, tags...) }, nil),
			}
		} else {
			rw = dom.Rewrite{
				Rebuild: rebuildWith(func(n *html.Node) bool { return dom.IsElement(n, tags...) },
					func() *html.Node { return dom.CreateElement(tags[0]) }),
			}
		}
	case ForeColor:
		if value == "" {
			return fmt.Errorf("%s: %w", cmd, ErrMissingValue)
		}
		rw = dom.Rewrite{
			Lift: colorFont.Match,
			Rebuild: rebuildWith(colorFont.Match, func() *html.Node {
				return dom.CreateElement("font", html.Attribute{Key: "color", Val: value})
			}),
		}
	case RemoveFormat:
		rw = dom.Rewrite{
			Lift:    dom.IsFormatting,
			Rebuild: rebuildWith(dom.IsFormatting, nil),
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd)
	}

	if r.Collapsed() {
		return nil
	}
	start, end, _ := e.sel.TextOffsets(root)
	container, err := dom.RewriteRange(root, r, rw)
	if err != nil && !errors.Is(err, dom.ErrEmptyFragment) {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	scope := root
	if container != nil && dom.Contains(root, container) {
		scope = container
	}
	dom.MergeFormatting(scope)
	dom.NormalizeText(scope)
	if e.normalize != nil {
		e.normalize(root)
	}
	e.sel.SelectText(root, start, end)
	return nil
}

// QueryState reports whether every meaningful character of the selection (or
// the character before a caret) carries cmd's formatting.
func (e *Executor) QueryState(cmd Command) (bool, error) {
	tags, ok := toggles[cmd]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd)
	}
	root := e.doc.Root()
	r, ok := e.sel.Range()
	if !ok || !e.sel.Within(root) {
		return false, ErrNoSelection
	}
	formatted := func(n *html.Node) bool {
		return dom.ClosestAncestor(root, n, func(a *html.Node) bool { return dom.IsElement(a, tags...) }) != nil
	}

	if r.Collapsed() {
		n := caretNode(root, r.Start)
		return n != nil && formatted(n), nil
	}

	segs := dom.TextSegments(root, r)
	meaningful := 0
	for _, s := range segs {
		if dom.IsBlank(s.Text()) {
			continue
		}
		meaningful++
		if !formatted(s.Node) {
			return false, nil
		}
	}
	if meaningful == 0 {
		for _, s := range segs {
			if !formatted(s.Node) {
				return false, nil
			}
		}
		return len(segs) > 0, nil
	}
	return true, nil
}

// caretNode finds the node whose formatting a caret at p inherits.
func caretNode(root *html.Node, p dom.Point) *html.Node {
	if dom.IsText(p.Node) {
		return p.Node
	}
	if p.Offset > 0 {
		if prev := dom.ChildAt(p.Node, p.Offset-1); prev != nil {
			for prev.LastChild != nil {
				prev = prev.LastChild
			}
			return prev
		}
	}
	if p.Node == root {
		return nil
	}
	return p.Node
}

// rebuildWith returns a rebuild function that unwraps every element matching
// strip and, when wrap is set, wraps every non-empty text node in a fresh
// element from wrap.
func rebuildWith(strip func(*html.Node) bool, wrap func() *html.Node) func([]*html.Node) []*html.Node {
	var rebuild func(n *html.Node) []*html.Node
	rebuild = func(n *html.Node) []*html.Node {
		switch {
		case n.Type == html.TextNode:
			if n.Data == "" {
				return nil
			}
			t := dom.CreateText(n.Data)
			if wrap == nil {
				return []*html.Node{t}
			}
			w := wrap()
			w.AppendChild(t)
			return []*html.Node{w}
		case dom.IsMarker(n):
			return nil
		case n.Type == html.ElementNode && strip(n):
			var out []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				out = append(out, rebuild(c)...)
			}
			return out
		case n.Type == html.ElementNode:
			clone := dom.ShallowClone(n)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				for _, k := range rebuild(c) {
					clone.AppendChild(k)
				}
			}
			return []*html.Node{clone}
		}
		return []*html.Node{dom.ShallowClone(n)}
	}
	return func(frag []*html.Node) []*html.Node {
		var out []*html.Node
		for _, n := range frag {
			out = append(out, rebuild(n)...)
		}
		return out
	}
}
