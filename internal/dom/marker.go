package dom

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// MarkerAttr flags the temporary boundary markers.
const MarkerAttr = "data-rte-marker"

// MarkerSelector matches every boundary marker.
var MarkerSelector = cascadia.MustCompile("span[" + MarkerAttr + "]")

// NewMarker creates an invisible, zero-size marker with a fresh id.
func NewMarker() *html.Node {
	return CreateElement("span",
		html.Attribute{Key: MarkerAttr, Val: "true"},
		html.Attribute{Key: "id", Val: GenerateUniqueID("rte-marker")},
		html.Attribute{Key: "style", Val: "display: inline-block; width: 0; height: 0; overflow: hidden"},
	)
}

// IsMarker reports whether n is a boundary marker.
func IsMarker(n *html.Node) bool {
	return IsElement(n) && MarkerSelector.Match(n)
}

// InsertAt places n at p, splitting a text node when p falls inside one.
// Empty text halves are never created.
func InsertAt(p Point, n *html.Node) {
	if p.Node.Type == html.TextNode {
		t := p.Node
		switch {
		case p.Offset <= 0:
			t.Parent.InsertBefore(n, t)
		case p.Offset >= len(t.Data):
			InsertAfter(t, n)
		default:
			tail := CreateText(t.Data[p.Offset:])
			t.Data = t.Data[:p.Offset]
			InsertAfter(t, tail)
			t.Parent.InsertBefore(n, tail)
		}
		return
	}
	p.Node.InsertBefore(n, ChildAt(p.Node, p.Offset))
}

// InsertMarkers brackets r with a start and an end marker. The end marker
// goes in first so the start point stays valid.
func InsertMarkers(r Range) (start, end *html.Node) {
	start, end = NewMarker(), NewMarker()
	InsertAt(r.End, end)
	InsertAt(r.Start, start)
	return start, end
}

// RemoveMarker detaches a marker and prunes the inline ancestors it leaves
// hollow, stopping at root.
func RemoveMarker(root, m *html.Node) {
	p := m.Parent
	Detach(m)
	for p != nil && p != root && p.Parent != nil && IsElement(p) && !IsVoid(p) && p.FirstChild == nil {
		next := p.Parent
		Detach(p)
		p = next
	}
}

// RemoveAllMarkers strips every marker below root and returns how many were
// found.
func RemoveAllMarkers(root *html.Node) int {
	markers := MarkerSelector.MatchAll(root)
	for _, m := range markers {
		RemoveMarker(root, m)
	}
	return len(markers)
}

// Hoist moves n up until it is a sibling of ancestor, splitting ancestor and
// every element in between into a part before n and a part after n. Parts
// left without children are dropped.
func Hoist(n, ancestor *html.Node) {
	for {
		p := n.Parent
		gp := p.Parent
		tail := ShallowClone(p)
		for s := n.NextSibling; s != nil; {
			next := s.NextSibling
			p.RemoveChild(s)
			tail.AppendChild(s)
			s = next
		}
		p.RemoveChild(n)
		gp.InsertBefore(n, p.NextSibling)
		if tail.FirstChild != nil {
			InsertAfter(n, tail)
		}
		if p.FirstChild == nil {
			gp.RemoveChild(p)
		}
		if p == ancestor {
			return
		}
	}
}

// LiftOut hoists n out of the outermost ancestor below root that matches.
func LiftOut(root, n *html.Node, match func(*html.Node) bool) {
	if match == nil {
		return
	}
	if a := OutermostAncestor(root, n, match); a != nil {
		Hoist(n, a)
	}
}
