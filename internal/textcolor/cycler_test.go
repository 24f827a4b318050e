package textcolor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/format"
	"github.com/zam-dot/brandstudio/internal/palette"
)

type call struct {
	cmd   format.Command
	value string
}

func newCycler(t *testing.T, b palette.Brand) (*Cycler, *dom.Document, *dom.Selection, *[]call) {
	t.Helper()
	d, err := dom.NewDocument("Hello world")
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	sel := dom.NewSelection()
	calls := &[]call{}
	run := func(cmd format.Command, value string) tea.Cmd {
		*calls = append(*calls, call{cmd, value})
		return func() tea.Msg { return nil }
	}
	return New(d, sel, b, run), d, sel, calls
}

func TestCycleWrapsFromWhite(t *testing.T) {
	c, d, sel, calls := newCycler(t, palette.Brand{Secondary: "#111111", Highlight: "#222222"})
	sel.SelectText(d.Root(), 0, 5)

	want := []string{"#111111", "#222222", "#ffffff", "#111111"}
	for i, w := range want {
		if cmd := c.Cycle(); cmd == nil {
			t.Fatalf("cycle %d returned no command", i)
		}
		if got := (*calls)[i]; got.cmd != format.ForeColor || got.value != w {
			t.Errorf("cycle %d = %+v, want foreColor %s", i, got, w)
		}
	}
}

func TestCycleNeedsSelection(t *testing.T) {
	c, d, sel, calls := newCycler(t, palette.Brand{})

	if c.Cycle() != nil {
		t.Error("cycled without a selection")
	}
	sel.SelectText(d.Root(), 3, 3)
	if c.Cycle() != nil {
		t.Error("cycled on a caret")
	}
	other, _ := dom.NewDocument("elsewhere")
	sel.SelectText(other.Root(), 0, 4)
	if c.Cycle() != nil {
		t.Error("cycled a selection outside the document")
	}
	if len(*calls) != 0 || c.Current() != palette.White {
		t.Errorf("calls %v current %q", *calls, c.Current())
	}
}

func TestSetBrand(t *testing.T) {
	tests := []struct {
		name    string
		cycles  int
		next    palette.Brand
		current string
	}{
		{"kept colour stays selected", 2, palette.Brand{Secondary: "#333333", Highlight: "#222222"}, "#222222"},
		{"vanished colour falls back to white", 1, palette.Brand{Secondary: "#333333", Highlight: "#444444"}, "#ffffff"},
		{"white survives any recolour", 0, palette.Brand{Secondary: "#555555"}, "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d, sel, _ := newCycler(t, palette.Brand{Secondary: "#111111", Highlight: "#222222"})
			sel.SelectText(d.Root(), 0, 5)
			for range tt.cycles {
				c.Cycle()
			}
			c.SetBrand(tt.next)
			if got := c.Current(); got != tt.current {
				t.Errorf("Current() = %q, want %q", got, tt.current)
			}
		})
	}
}

func TestPaletteDefaults(t *testing.T) {
	got := Palette(palette.Brand{})
	want := []string{palette.DefaultSecondary, palette.DefaultHighlight, palette.White}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Palette()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
