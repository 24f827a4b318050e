// Package palette holds the brand colour tokens the editor consumes and the
// colour helpers that derive highlight and text palettes from them.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fallbacks used when the host does not supply a brand colour.
const (
	DefaultPrimary   = "#0000FF"
	DefaultSecondary = "#008080"
	DefaultHighlight = "#FFFF00"
	DefaultText      = "#000000"
	White            = "#ffffff"
)

// Brand is the subset of the brand configuration the editor reads.
type Brand struct {
	Primary   string `json:"primary" toml:"primary"`
	Secondary string `json:"secondary" toml:"secondary"`
	Highlight string `json:"highlight" toml:"highlight"`
	Text      string `json:"text" toml:"text"`
}

// WithDefaults returns a copy of b with every empty colour replaced by its
// fallback.
func (b Brand) WithDefaults() Brand {
	if strings.TrimSpace(b.Primary) == "" {
		b.Primary = DefaultPrimary
	}
	if strings.TrimSpace(b.Secondary) == "" {
		b.Secondary = DefaultSecondary
	}
	if strings.TrimSpace(b.Highlight) == "" {
		b.Highlight = DefaultHighlight
	}
	if strings.TrimSpace(b.Text) == "" {
		b.Text = DefaultText
	}
	return b
}

// RGBA is a parsed CSS colour with 8-bit channels and a 0..1 alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Parse understands #rgb, #rgba, #rrggbb, #rrggbbaa, rgb() and rgba().
func Parse(css string) (RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(css))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunc(s)
	}
	return RGBA{}, fmt.Errorf("unsupported colour %q", css)
}

func parseHex(s string) (RGBA, error) {
	alpha := 1.0
	switch len(s) {
	case 5:
		a, err := strconv.ParseUint(s[4:], 16, 4)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = float64(a*17) / 255
		s = s[:4]
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunc(s string) (RGBA, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return RGBA{}, fmt.Errorf("malformed colour %q", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("malformed colour %q", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("malformed channel in %q: %w", s, err)
		}
		ch[i] = uint8(clamp(v, 0, 255))
	}
	alpha := 1.0
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("malformed alpha in %q: %w", s, err)
		}
		alpha = clamp(v, 0, 1)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// String renders the colour as an rgba() function.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// AdjustColorOpacity returns color with its alpha replaced by opacity.
// Input it cannot parse is returned unchanged.
func AdjustColorOpacity(color string, opacity float64) string {
	c, err := Parse(color)
	if err != nil {
		return color
	}
	c.A = clamp(opacity, 0, 1)
	return c.String()
}

// TerminalColor flattens a CSS colour (or the first colour of a gradient)
// onto a white page and returns it as a lipgloss hex colour. Transparent and
// unparseable values yield an empty colour, which lipgloss treats as unset.
func TerminalColor(css string) lipgloss.Color {
	css = strings.TrimSpace(css)
	if css == "" || css == "transparent" {
		return lipgloss.Color("")
	}
	if strings.Contains(css, "gradient(") {
		css = firstColorIn(css)
	}
	c, err := Parse(css)
	if err != nil || c.A == 0 {
		return lipgloss.Color("")
	}
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return lipgloss.Color(white.BlendRgb(fg, c.A).Clamped().Hex())
}

// firstColorIn picks the first rgb()/rgba()/#hex token out of a gradient.
func firstColorIn(s string) string {
	lower := strings.ToLower(s)
	best := -1
	for _, p := range []string{"rgba(", "rgb(", "#"} {
		if i := strings.Index(lower, p); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	rest := lower[best:]
	if rest[0] == '#' {
		end := 1
		for end < len(rest) && strings.ContainsRune("0123456789abcdef", rune(rest[end])) {
			end++
		}
		return rest[:end]
	}
	if end := strings.IndexByte(rest, ')'); end >= 0 {
		return rest[:end+1]
	}
	return ""
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
