package dom

import "golang.org/x/net/html"

// Point is a boundary point. For text nodes Offset is a byte offset into
// Data; for elements it is the index of the child the point sits before.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range spans two boundary points with Start at or before End.
type Range struct {
	Start, End Point
}

// Collapsed reports whether the range starts and ends at the same point.
func (r Range) Collapsed() bool {
	return ComparePoints(r.Start, r.End) == 0
}

// Equal reports whether both ranges use identical boundary points.
func (r Range) Equal(o Range) bool {
	return r.Start == o.Start && r.End == o.End
}

// ordered returns r with its endpoints swapped if they are reversed.
func (r Range) ordered() Range {
	if ComparePoints(r.Start, r.End) > 0 {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// path returns the child indices leading from the top of the tree to p,
// followed by p's own offset, so that points compare lexicographically.
func (p Point) path() []int {
	var rev []int
	rev = append(rev, p.Offset)
	for n := p.Node; n.Parent != nil; n = n.Parent {
		rev = append(rev, Index(n))
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// ComparePoints orders two points in the same tree: -1 if a comes first,
// 1 if b does, 0 if they are the same position.
func ComparePoints(a, b Point) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	pa, pb := a.path(), b.path()
	for i := 0; i < len(pa) && i < len(pb); i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// CommonAncestor returns the deepest node containing both a and b.
func CommonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]bool)
	for n := a; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := b; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// NodeContents returns the range covering all children of n.
func NodeContents(n *html.Node) Range {
	return Range{Start: Point{Node: n}, End: Point{Node: n, Offset: ChildCount(n)}}
}
