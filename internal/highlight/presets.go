package highlight

import (
	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/palette"
)

// NoneName is the sentinel preset that clears highlighting.
const NoneName = "None"

// presetOpacity is applied to every brand colour a preset derives from.
const presetOpacity = 0.6

// StyledHighlight is one selectable highlight preset.
type StyledHighlight struct {
	Name            string
	Color           string
	Padding         string
	BorderRadius    string
	BorderBottom    string
	TextDecoration  string
	BackgroundImage string
	Display         string
}

// IsNone reports whether h is the clearing preset.
func (h StyledHighlight) IsNone() bool {
	return h.Name == NoneName
}

// Declarations lists the inline style a span carrying h receives.
func (h StyledHighlight) Declarations() []dom.Declaration {
	return []dom.Declaration{
		{Property: "background-color", Value: h.Color},
		{Property: "padding", Value: h.Padding},
		{Property: "border-radius", Value: h.BorderRadius},
		{Property: "border-bottom", Value: h.BorderBottom},
		{Property: "text-decoration", Value: h.TextDecoration},
		{Property: "background-image", Value: h.BackgroundImage},
		{Property: "display", Value: h.Display},
		{Property: "box-decoration-break", Value: "clone"},
		{Property: "-webkit-box-decoration-break", Value: "clone"},
	}
}

// Catalog derives the preset list from the brand colours. The last entry is
// always the None sentinel.
func Catalog(b palette.Brand) []StyledHighlight {
	b = b.WithDefaults()
	primary := palette.AdjustColorOpacity(b.Primary, presetOpacity)
	secondary := palette.AdjustColorOpacity(b.Secondary, presetOpacity)
	highlight := palette.AdjustColorOpacity(b.Highlight, presetOpacity)

	return []StyledHighlight{
		{
			Name:         "Rounded Highlight",
			Color:        highlight,
			Padding:      "0.1em 0.3em",
			BorderRadius: "0.4em",
			Display:      "inline",
		},
		{
			Name:         "Square Highlight",
			Color:        highlight,
			Padding:      "0.1em 0.3em",
			BorderRadius: "0",
			Display:      "inline",
		},
		{
			Name:            "Marker Highlight",
			Color:           "transparent",
			BackgroundImage: "linear-gradient(180deg, transparent 55%, " + highlight + " 55%)",
			Display:         "inline",
		},
		{
			Name:         "Underline Highlight",
			Color:        "transparent",
			BorderBottom: "0.15em solid " + primary,
			Display:      "inline",
		},
		{
			Name:         "Primary Highlight",
			Color:        primary,
			Padding:      "0.1em 0.3em",
			BorderRadius: "0.4em",
			Display:      "inline",
		},
		{
			Name:         "Secondary Highlight",
			Color:        secondary,
			Padding:      "0.1em 0.3em",
			BorderRadius: "0.4em",
			Display:      "inline",
		},
		{
			Name:  NoneName,
			Color: "transparent",
		},
	}
}

// indexOf returns the position of the preset called name, or -1.
func indexOf(catalog []StyledHighlight, name string) int {
	for i, h := range catalog {
		if h.Name == name {
			return i
		}
	}
	return -1
}
