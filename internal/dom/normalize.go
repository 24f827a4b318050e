package dom

import (
	"sort"

	"golang.org/x/net/html"
)

// NormalizeText merges adjacent text nodes and drops empty ones below n.
func NormalizeText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && c.Data == "":
			n.RemoveChild(c)
		case c.Type == html.TextNode:
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
		case c.Type == html.ElementNode:
			NormalizeText(c)
		}
		c = next
	}
}

// SameElement reports whether a and b are elements with the same tag and the
// same attributes, in any order.
func SameElement(a, b *html.Node) bool {
	if !IsElement(a) || !IsElement(b) || a.Data != b.Data || len(a.Attr) != len(b.Attr) {
		return false
	}
	key := func(attrs []html.Attribute) []string {
		out := make([]string, len(attrs))
		for i, at := range attrs {
			out[i] = at.Namespace + "\x00" + at.Key + "\x00" + at.Val
		}
		sort.Strings(out)
		return out
	}
	ka, kb := key(a.Attr), key(b.Attr)
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}

// MergeFormatting joins directly adjacent identical formatting elements
// (<b>a</b><b>b</b> becomes <b>ab</b>) below n and drops hollow ones.
// It reports whether anything changed.
func MergeFormatting(n *html.Node) bool {
	changed := false
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if IsFormatting(c) && Hollow(c) {
			n.RemoveChild(c)
			changed = true
			c = next
			continue
		}
		if IsFormatting(c) && next != nil && SameElement(c, next) {
			MoveChildren(next, c)
			n.RemoveChild(next)
			changed = true
			continue
		}
		if IsElement(c) && MergeFormatting(c) {
			changed = true
		}
		c = next
	}
	return changed
}
