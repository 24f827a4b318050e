package dom

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	// ErrEmptyFragment means the rebuilt fragment held no text and the
	// rewrite was rolled back.
	ErrEmptyFragment = errors.New("range holds no text")
	// ErrMarkerLost means a boundary marker vanished mid-rewrite.
	ErrMarkerLost = errors.New("selection marker missing")
)

// ExtractBetween detaches everything strictly between two markers and
// returns it as a fragment. Elements that contain only one of the markers
// are split: the part inside the range is shallow-cloned into the fragment,
// the rest stays put. The fragment belongs directly after the returned
// anchor node, which is where the collapsed range now sits.
func ExtractBetween(start, end *html.Node) (frag []*html.Node, after *html.Node) {
	common := CommonAncestor(start, end)
	startTop := topBelow(common, start)
	endTop := topBelow(common, end)

	if startTop != start {
		if tail := cloneTail(start, startTop); !Hollow(tail) {
			frag = append(frag, tail)
		}
	}
	for s := startTop.NextSibling; s != nil && s != endTop; {
		next := s.NextSibling
		common.RemoveChild(s)
		frag = append(frag, s)
		s = next
	}
	if endTop != end {
		if head := cloneHead(end, endTop); !Hollow(head) {
			frag = append(frag, head)
		}
	}
	return frag, startTop
}

// topBelow returns the ancestor of n (n included) whose parent is top.
func topBelow(top, n *html.Node) *html.Node {
	for n.Parent != top {
		n = n.Parent
	}
	return n
}

// cloneTail moves everything after n inside top into a clone of top,
// rebuilding the intermediate elements along the way.
func cloneTail(n, top *html.Node) *html.Node {
	var built *html.Node
	cur := n
	for {
		p := cur.Parent
		clone := ShallowClone(p)
		if built != nil {
			clone.AppendChild(built)
		}
		for s := cur.NextSibling; s != nil; {
			next := s.NextSibling
			p.RemoveChild(s)
			clone.AppendChild(s)
			s = next
		}
		built = clone
		if p == top {
			return built
		}
		cur = p
	}
}

// cloneHead is cloneTail's mirror image for the content before n.
func cloneHead(n, top *html.Node) *html.Node {
	var built *html.Node
	cur := n
	for {
		p := cur.Parent
		clone := ShallowClone(p)
		for s := p.FirstChild; s != nil && s != cur; {
			next := s.NextSibling
			p.RemoveChild(s)
			clone.AppendChild(s)
			s = next
		}
		if built != nil {
			clone.AppendChild(built)
		}
		built = clone
		if p == top {
			return built
		}
		cur = p
	}
}

// InsertNodesBefore places nodes, in order, directly before ref.
func InsertNodesBefore(ref *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		ref.Parent.InsertBefore(n, ref)
	}
}

// Rewrite describes one marker-anchored rewrite of a range.
type Rewrite struct {
	// Lift names the ancestors the boundaries must be hoisted out of before
	// extraction, so rebuilt content never lands inside one of them.
	Lift func(*html.Node) bool
	// Rebuild turns the extracted fragment into its replacement.
	Rebuild func(frag []*html.Node) []*html.Node
}

// RewriteRange brackets r with markers, extracts what lies between them,
// rebuilds it and inserts the result where the content was. It returns the
// parent of the rewritten area. Every marker is gone when it returns.
//
// When the rebuilt fragment holds no text the original content is put back
// and ErrEmptyFragment is returned. ErrMarkerLost reports markers that went
// missing; the tree is left consistent and any rebuilt content stays in place.
func RewriteRange(root *html.Node, r Range, rw Rewrite) (*html.Node, error) {
	start, end := InsertMarkers(r)
	defer func() {
		RemoveMarker(root, start)
		RemoveMarker(root, end)
	}()

	LiftOut(root, start, rw.Lift)
	LiftOut(root, end, rw.Lift)
	if !Contains(root, start) || !Contains(root, end) {
		return root, ErrMarkerLost
	}

	frag, after := ExtractBetween(start, end)
	container := after.Parent
	// The anchor holds the insertion point even if a marker goes missing
	// while the fragment is rebuilt.
	anchor := CreateText("")
	InsertAfter(after, anchor)
	defer Detach(anchor)

	rebuilt := rw.Rebuild(frag)
	if FragmentText(rebuilt) == "" {
		InsertNodesBefore(anchor, frag)
		return container, ErrEmptyFragment
	}
	InsertNodesBefore(anchor, rebuilt)

	if !Contains(root, start) || !Contains(root, end) {
		return container, ErrMarkerLost
	}
	return container, nil
}

// DeleteContents removes the content of r and returns the rune offset where
// the caret belongs afterwards.
func DeleteContents(root *html.Node, r Range) int {
	at := TextOffset(root, r.Start)
	if r.Collapsed() {
		return at
	}
	start, end := InsertMarkers(r)
	ExtractBetween(start, end)
	RemoveMarker(root, start)
	RemoveMarker(root, end)
	NormalizeText(root)
	return at
}

// InsertText replaces r with text and returns the caret offset after it. A
// collapsed range is filled at its exact point, so a caret placed after a
// line break stays after it.
func InsertText(root *html.Node, r Range, text string) int {
	p := r.Start
	at := TextOffset(root, p)
	if !r.Collapsed() {
		at = DeleteContents(root, r)
		p = PointAtOffset(root, at, false)
	}
	if text == "" {
		return at
	}
	switch {
	case p.Node.Type == html.TextNode:
		t := p.Node
		off := clampOffset(p.Offset, len(t.Data))
		t.Data = t.Data[:off] + text + t.Data[off:]
	default:
		next := ChildAt(p.Node, p.Offset)
		if prev := ChildAt(p.Node, p.Offset-1); p.Offset > 0 && IsText(prev) {
			prev.Data += text
		} else if IsText(next) {
			next.Data = text + next.Data
		} else {
			p.Node.InsertBefore(CreateText(text), next)
		}
	}
	return at + utf8.RuneCountInString(text)
}

// DeleteVoidBefore removes a void element (a line break, say) that sits
// directly before p and reports whether it did.
func DeleteVoidBefore(p Point) bool {
	var prev *html.Node
	switch {
	case p.Node.Type == html.TextNode && p.Offset == 0:
		prev = p.Node.PrevSibling
	case p.Node.Type == html.ElementNode && p.Offset > 0:
		prev = ChildAt(p.Node, p.Offset-1)
	}
	if prev == nil || !IsVoid(prev) {
		return false
	}
	Detach(prev)
	return true
}

// DeleteVoidAfter is DeleteVoidBefore for the element directly after p.
func DeleteVoidAfter(p Point) bool {
	var next *html.Node
	switch {
	case p.Node.Type == html.TextNode && p.Offset >= len(p.Node.Data):
		next = p.Node.NextSibling
	case p.Node.Type == html.ElementNode:
		next = ChildAt(p.Node, p.Offset)
	}
	if next == nil || !IsVoid(next) {
		return false
	}
	Detach(next)
	return true
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
