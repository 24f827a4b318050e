// Package dom models the editable region of a rich-text field as an HTML node
// tree and provides the primitives the editor builds on:
//
//   - Document: the editable root, parsed from (sanitised) markup.
//   - Point and Range: DOM-style boundary points. Inside text nodes the offset
//     is a byte offset into the node's data, inside elements it is a child
//     index.
//   - Selection: the single program-wide selection, shared by every editor,
//     like window.getSelection() in a browser.
//   - Markers: invisible elements inserted at range boundaries so a logical
//     position survives restructuring of the tree.
//   - RewriteRange: the marker, extract, rebuild and reinsert sequence used
//     by formatting and highlighting.
//
// Positions exposed to callers (SelectText, TextOffsets) are rune offsets into
// the document's text content, which is the concatenation of every text node.
package dom
