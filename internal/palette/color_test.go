package palette

import "testing"

func TestAdjustColorOpacity(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		opacity float64
		want    string
	}{
		{"six digit hex", "#FF0000", 0.6, "rgba(255, 0, 0, 0.6)"},
		{"three digit hex", "#0f0", 0.5, "rgba(0, 255, 0, 0.5)"},
		{"hex with alpha", "#0000ff80", 0.6, "rgba(0, 0, 255, 0.6)"},
		{"four digit hex", "#0f08", 0.6, "rgba(0, 255, 0, 0.6)"},
		{"bad short alpha", "#0f0g", 0.6, "#0f0g"},
		{"rgb", "rgb(10, 20, 30)", 0.6, "rgba(10, 20, 30, 0.6)"},
		{"rgba replaces alpha", "rgba(10, 20, 30, 0.1)", 0.6, "rgba(10, 20, 30, 0.6)"},
		{"clamps opacity", "#000000", 2, "rgba(0, 0, 0, 1)"},
		{"unparseable passes through", "tomato", 0.6, "tomato"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustColorOpacity(tt.in, tt.opacity); got != tt.want {
				t.Errorf("AdjustColorOpacity(%q, %v) = %q, want %q", tt.in, tt.opacity, got, tt.want)
			}
		})
	}
}

func TestBrandWithDefaults(t *testing.T) {
	b := Brand{Secondary: "#123456"}.WithDefaults()
	if b.Primary != DefaultPrimary {
		t.Errorf("Primary = %q, want %q", b.Primary, DefaultPrimary)
	}
	if b.Secondary != "#123456" {
		t.Errorf("Secondary = %q, want supplied value", b.Secondary)
	}
	if b.Highlight != DefaultHighlight {
		t.Errorf("Highlight = %q, want %q", b.Highlight, DefaultHighlight)
	}
	if b.Text != DefaultText {
		t.Errorf("Text = %q, want %q", b.Text, DefaultText)
	}
}

func TestTerminalColor(t *testing.T) {
	if got := TerminalColor("transparent"); got != "" {
		t.Errorf("transparent = %q, want empty", got)
	}
	if got := TerminalColor("#ff0000"); got != "#ff0000" {
		t.Errorf("opaque red = %q, want #ff0000", got)
	}
	if got := TerminalColor("#f00f"); got != "#ff0000" {
		t.Errorf("short opaque red = %q, want #ff0000", got)
	}
	// Half-transparent black over white lands on mid grey.
	if got := TerminalColor("rgba(0, 0, 0, 0.5)"); got != "#808080" {
		t.Errorf("half black = %q, want #808080", got)
	}
	if got := TerminalColor("linear-gradient(180deg, transparent 60%, rgba(255, 0, 0, 1) 60%)"); got != "#ff0000" {
		t.Errorf("gradient = %q, want #ff0000", got)
	}
}
