package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// policy keeps the markup an editable field can legitimately contain: inline
// formatting, line structure, highlight spans and their data attributes.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "s", "strike", "sub", "sup",
		"br", "p", "div", "span", "font", "a")
	p.AllowAttrs("style").OnElements("span", "div", "p")
	p.AllowAttrs("color").OnElements("font")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	return p
}()

// Sanitize strips everything the editor does not understand from markup.
func Sanitize(markup string) string {
	return policy.Sanitize(markup)
}

// Document is one editable region.
type Document struct {
	root *html.Node
}

// NewDocument builds a document from markup. The markup is sanitised first.
func NewDocument(markup string) (*Document, error) {
	root := CreateElement("div", html.Attribute{Key: "contenteditable", Val: "true"})
	d := &Document{root: root}
	if err := d.SetHTML(markup); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the editable root element.
func (d *Document) Root() *html.Node {
	return d.root
}

// SetHTML replaces the document's content.
func (d *Document) SetHTML(markup string) error {
	nodes, err := parseFragment(markup)
	if err != nil {
		return err
	}
	for c := d.root.FirstChild; c != nil; {
		next := c.NextSibling
		d.root.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		d.root.AppendChild(n)
	}
	return nil
}

// Canonical returns markup the way the document would serialise it after
// loading, so external content can be compared with HTML().
func Canonical(markup string) (string, error) {
	d, err := NewDocument(markup)
	if err != nil {
		return "", err
	}
	return d.HTML(), nil
}

func parseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(Sanitize(markup)), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	return nodes, nil
}

// Query wraps the root in a goquery selection.
func (d *Document) Query() *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Selection
}

// Find runs a CSS selector against the document's descendants.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.Query().Find(selector)
}

// HTML serialises the document's content.
func (d *Document) HTML() string {
	s, err := d.Query().Html()
	if err != nil {
		return ""
	}
	return s
}

// Text returns the document's text content.
func (d *Document) Text() string {
	return d.Query().Text()
}

// MarkerCount returns how many boundary markers are present.
func (d *Document) MarkerCount() int {
	return d.Find("[" + MarkerAttr + "]").Length()
}
