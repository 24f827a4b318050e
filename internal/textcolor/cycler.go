// Package textcolor cycles the foreground colour of a selection through a
// small brand-derived palette.
package textcolor

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/format"
	"github.com/zam-dot/brandstudio/internal/palette"
)

// Cycler remembers which palette colour was applied last.
type Cycler struct {
	doc     *dom.Document
	sel     *dom.Selection
	run     format.Runner
	palette []string
	index   int
}

// Palette returns the colours a brand cycles through: secondary, highlight
// and white.
func Palette(b palette.Brand) []string {
	b = b.WithDefaults()
	return []string{b.Secondary, b.Highlight, palette.White}
}

// New returns a cycler starting at white.
func New(doc *dom.Document, sel *dom.Selection, b palette.Brand, run format.Runner) *Cycler {
	p := Palette(b)
	return &Cycler{doc: doc, sel: sel, run: run, palette: p, index: len(p) - 1}
}

// Palette returns the current colours.
func (c *Cycler) Palette() []string {
	return slices.Clone(c.palette)
}

// Current returns the colour applied last, white when none was.
func (c *Cycler) Current() string {
	return c.palette[c.index]
}

// SetBrand rebuilds the palette. When the remembered colour is not part of
// the new palette the cycler falls back to white.
func (c *Cycler) SetBrand(b palette.Brand) {
	current := c.Current()
	c.palette = Palette(b)
	if i := slices.Index(c.palette, current); i >= 0 {
		c.index = i
		return
	}
	c.index = len(c.palette) - 1
}

// Cycle applies the next colour to the selection. Without a non-collapsed
// selection inside the document it does nothing and returns nil.
func (c *Cycler) Cycle() tea.Cmd {
	if c.sel.IsCollapsed() || !c.sel.Within(c.doc.Root()) {
		return nil
	}
	c.index = (c.index + 1) % len(c.palette)
	if c.run == nil {
		return nil
	}
	return c.run(format.ForeColor, c.palette[c.index])
}
