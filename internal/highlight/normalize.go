package highlight

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/zam-dot/brandstudio/internal/dom"
)

// maxNormalizePasses bounds the merge loop.
var maxNormalizePasses = 20

// Normalize merges adjacent highlight spans that look the same and drops the
// empty ones below container, falling back to the document root when
// container is nil or no longer attached. Adjacent text nodes are coalesced
// at the end.
func (e *Engine) Normalize(container *html.Node) {
	root := e.doc.Root()
	if container == nil || !dom.Contains(root, container) {
		container = root
	}
	for pass := 0; ; pass++ {
		if pass == maxNormalizePasses {
			slog.Warn("highlight normalisation did not settle", "editor", e.id, "passes", pass)
			break
		}
		changed := mergeSpans(container)
		if dom.MergeFormatting(container) {
			changed = true
		}
		if !changed {
			break
		}
	}
	dom.NormalizeText(container)
}

// SameProfile reports whether two highlight spans carry the same preset and
// the same inline style.
func SameProfile(a, b *html.Node) bool {
	return IsSpan(a) && IsSpan(b) &&
		SpanName(a) == SpanName(b) &&
		dom.SameStyle(dom.StyleOf(a), dom.StyleOf(b))
}

// mergeSpans makes one pass over n's subtree and reports whether it changed
// anything. Whitespace between two merged spans moves into the first one.
func mergeSpans(n *html.Node) bool {
	changed := false
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !IsSpan(c) {
			if dom.IsElement(c) && mergeSpans(c) {
				changed = true
			}
			c = next
			continue
		}

		if SpanName(c) != NoneName && dom.TextContent(c) == "" {
			if dom.Hollow(c) {
				n.RemoveChild(c)
			} else {
				dom.Unwrap(c)
			}
			changed = true
			c = next
			continue
		}

		var gap []*html.Node
		s := next
		for s != nil && s.Type == html.TextNode && dom.IsBlank(s.Data) {
			gap = append(gap, s)
			s = s.NextSibling
		}
		if s != nil && SameProfile(c, s) {
			for _, w := range gap {
				n.RemoveChild(w)
				c.AppendChild(w)
			}
			dom.MoveChildren(s, c)
			n.RemoveChild(s)
			changed = true
			continue
		}
		c = next
	}
	return changed
}
