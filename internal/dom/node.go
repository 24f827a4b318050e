package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never have children and survive even when they carry no text.
var voidElements = map[string]bool{
	"br": true, "img": true, "hr": true, "wbr": true, "input": true,
}

// formattingElements are the inline wrappers produced by format commands.
var formattingElements = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "u": true,
	"font": true, "s": true, "strike": true, "sub": true, "sup": true,
}

// IsElement reports whether n is an element with one of the given tags. With
// no tags it reports whether n is any element.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsVoid reports whether n is a void element such as <br>.
func IsVoid(n *html.Node) bool {
	return IsElement(n) && voidElements[n.Data]
}

// IsFormatting reports whether n is an inline formatting element.
func IsFormatting(n *html.Node) bool {
	return IsElement(n) && formattingElements[n.Data]
}

// CreateElement builds a detached element.
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
}

// CreateText builds a detached text node.
func CreateText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// ShallowClone copies a node's type, tag and attributes but none of its
// children or tree links.
func ShallowClone(n *html.Node) *html.Node {
	return &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
}

// GetAttr returns the value of key and whether it is present.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := GetAttr(n, key)
	return ok
}

// SetAttr sets or replaces key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAfter places n directly after ref.
func InsertAfter(ref, n *html.Node) {
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		p.InsertBefore(c, n)
		c = next
	}
	p.RemoveChild(n)
}

// MoveChildren appends every child of from to to.
func MoveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; {
		next := c.NextSibling
		from.RemoveChild(c)
		to.AppendChild(c)
		c = next
	}
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Index returns n's position among its siblings.
func Index(n *html.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		i++
	}
	return i
}

// ChildAt returns the i-th child of n, or nil past the end.
func ChildAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// TextContent concatenates every text node below n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// FragmentText concatenates the text content of a list of nodes.
func FragmentText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(TextContent(n))
	}
	return sb.String()
}

// Hollow reports whether n holds neither text nor void elements, so removing
// it loses nothing visible.
func Hollow(n *html.Node) bool {
	if n.Type == html.TextNode {
		return n.Data == ""
	}
	if IsVoid(n) {
		return false
	}
	hollow := true
	Walk(n, func(c *html.Node) bool {
		if (c.Type == html.TextNode && c.Data != "") || IsVoid(c) {
			hollow = false
		}
		return hollow
	})
	return hollow
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// TextNodes returns every text node below n in document order.
func TextNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ClosestAncestor returns the nearest ancestor of n (n itself included) below
// root that satisfies match.
func ClosestAncestor(root, n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil && n != root; n = n.Parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// OutermostAncestor returns the farthest ancestor of n (n excluded) below
// root that satisfies match.
func OutermostAncestor(root, n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if match(p) {
			found = p
		}
	}
	return found
}
