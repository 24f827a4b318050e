package dom

import "golang.org/x/net/html"

// Selection is the program-wide selection. Several documents may share one
// Selection; each checks Within before acting on it.
type Selection struct {
	r     Range
	valid bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Range returns the current range.
func (s *Selection) Range() (Range, bool) {
	return s.r, s.valid
}

// SetRange replaces the selection, ordering its endpoints.
func (s *Selection) SetRange(r Range) {
	s.r = r.ordered()
	s.valid = true
}

// Collapse places a caret at p.
func (s *Selection) Collapse(p Point) {
	s.SetRange(Range{Start: p, End: p})
}

// SelectNodeContents selects every child of n.
func (s *Selection) SelectNodeContents(n *html.Node) {
	s.SetRange(NodeContents(n))
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.r = Range{}
	s.valid = false
}

// IsCollapsed reports whether there is no selection or only a caret.
func (s *Selection) IsCollapsed() bool {
	return !s.valid || s.r.Collapsed()
}

// Within reports whether both ends of the selection lie inside root.
func (s *Selection) Within(root *html.Node) bool {
	return s.valid && Contains(root, s.r.Start.Node) && Contains(root, s.r.End.Node)
}

// SelectText selects the runes [start, end) of root's text content.
func (s *Selection) SelectText(root *html.Node, start, end int) {
	s.SetRange(RangeAtOffsets(root, start, end))
}

// TextOffsets returns the selection as rune offsets into root's text content.
func (s *Selection) TextOffsets(root *html.Node) (start, end int, ok bool) {
	if !s.Within(root) {
		return 0, 0, false
	}
	return TextOffset(root, s.r.Start), TextOffset(root, s.r.End), true
}
