package dom

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Declaration is one inline CSS property.
type Declaration struct {
	Property string
	Value    string
}

// ParseStyle reads an inline style attribute into a property map. Invalid
// declarations are skipped.
func ParseStyle(style string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(style) == "" {
		return out
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return out
	}
	for _, d := range decls {
		out[strings.ToLower(d.Property)] = strings.TrimSpace(d.Value)
	}
	return out
}

// FormatStyle renders declarations in order, skipping empty values.
func FormatStyle(decls []Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d.Value == "" {
			continue
		}
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// StyleOf returns the parsed style attribute of n.
func StyleOf(n *html.Node) map[string]string {
	s, _ := GetAttr(n, "style")
	return ParseStyle(s)
}

// SameStyle reports whether two style maps hold exactly the same properties.
func SameStyle(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
