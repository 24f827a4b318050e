package dom

import (
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Segment is the part of one text node covered by a range, in bytes.
type Segment struct {
	Node     *html.Node
	From, To int
}

// Text returns the covered text.
func (s Segment) Text() string {
	return s.Node.Data[s.From:s.To]
}

// TextSegments returns, in document order, every text node below root that
// the range covers by at least one byte.
func TextSegments(root *html.Node, r Range) []Segment {
	var out []Segment
	for _, t := range TextNodes(root) {
		lo := Point{Node: t}
		hi := Point{Node: t, Offset: len(t.Data)}
		if ComparePoints(r.End, lo) <= 0 || ComparePoints(r.Start, hi) >= 0 {
			continue
		}
		from, to := 0, len(t.Data)
		if r.Start.Node == t {
			from = r.Start.Offset
		}
		if r.End.Node == t {
			to = r.End.Offset
		}
		if from < to {
			out = append(out, Segment{Node: t, From: from, To: to})
		}
	}
	return out
}

// RangeText returns the text a range covers.
func RangeText(root *html.Node, r Range) string {
	var b []byte
	for _, s := range TextSegments(root, r) {
		b = append(b, s.Text()...)
	}
	return string(b)
}

// TextOffset converts a point into a rune offset within root's text content.
func TextOffset(root *html.Node, p Point) int {
	offset := 0
	for _, t := range TextNodes(root) {
		if t == p.Node {
			return offset + utf8.RuneCountInString(t.Data[:clampOffset(p.Offset, len(t.Data))])
		}
		if ComparePoints(Point{Node: t, Offset: len(t.Data)}, p) > 0 {
			break
		}
		offset += utf8.RuneCountInString(t.Data)
	}
	return offset
}

// PointAtOffset converts a rune offset into a point inside a text node. When
// the offset falls on the boundary between two text nodes, forward picks the
// start of the following node and backward the end of the preceding one.
// Offsets beyond the text clamp to its end.
func PointAtOffset(root *html.Node, offset int, forward bool) Point {
	nodes := TextNodes(root)
	var last *html.Node
	pos := 0
	for _, t := range nodes {
		n := utf8.RuneCountInString(t.Data)
		if n == 0 {
			continue
		}
		if forward && offset >= pos && offset < pos+n {
			return Point{Node: t, Offset: byteIndex(t.Data, offset-pos)}
		}
		if !forward && offset > pos && offset <= pos+n {
			return Point{Node: t, Offset: byteIndex(t.Data, offset-pos)}
		}
		if !forward && offset <= 0 {
			return Point{Node: t}
		}
		last = t
		pos += n
	}
	if last != nil {
		return Point{Node: last, Offset: len(last.Data)}
	}
	return Point{Node: root, Offset: ChildCount(root)}
}

// RangeAtOffsets maps rune offsets back to a range whose start leans into the
// following text node and whose end leans into the preceding one, so that the
// range hugs the text it covers.
func RangeAtOffsets(root *html.Node, start, end int) Range {
	if start > end {
		start, end = end, start
	}
	if start == end {
		p := PointAtOffset(root, start, false)
		return Range{Start: p, End: p}
	}
	return Range{
		Start: PointAtOffset(root, start, true),
		End:   PointAtOffset(root, end, false),
	}.ordered()
}

// TextLength returns the number of runes in root's text content.
func TextLength(root *html.Node) int {
	n := 0
	for _, t := range TextNodes(root) {
		n += utf8.RuneCountInString(t.Data)
	}
	return n
}

func byteIndex(s string, runes int) int {
	i := 0
	for runes > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		runes--
	}
	return i
}

func clampOffset(off, max int) int {
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}
