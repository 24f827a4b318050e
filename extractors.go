package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/editor"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return errorMsg{err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return statusMsg(fmt.Sprintf("Copied %s to the clipboard", what))
	}
}

// exportMarkup wraps the field's content in its scope class and prepends the
// stylesheet that keeps nested links and colours inside highlights.
func exportMarkup(ed *editor.Model) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div></div>"))
	if err != nil {
		return "", err
	}
	wrap := doc.Find("div").First()
	wrap.AddClass(ed.ScopeClass())
	wrap.SetAttr("data-field", ed.FieldName())
	wrap.SetHtml(ed.Content())
	wrap.Find("[" + dom.MarkerAttr + "]").Remove()

	out, err := goquery.OuterHtml(wrap)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", ed.FieldName(), err)
	}
	return "<style>\n" + ed.Stylesheet() + "</style>\n" + out, nil
}

// exportText returns the field's text with line breaks kept.
func exportText(ed *editor.Model) string {
	sel := goquery.NewDocumentFromNode(ed.Document().Root()).Clone()
	sel.Find("br").ReplaceWithNodes(dom.CreateText("\n"))
	return sel.Text()
}

// exportMarkdown converts a field to markdown for the preview.
func exportMarkdown(ed *editor.Model) string {
	sel := goquery.NewDocumentFromNode(ed.Document().Root()).Selection
	return strings.TrimSpace(markdownOf(sel))
}

func markdownOf(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		inner := func() string { return markdownOf(s) }
		switch goquery.NodeName(s) {
		case "#text":
			b.WriteString(s.Text())
		case "br":
			b.WriteString("  \n")
		case "b", "strong":
			b.WriteString(emphasis("**", inner()))
		case "i", "em":
			b.WriteString(emphasis("*", inner()))
		case "s", "strike":
			b.WriteString(emphasis("~~", inner()))
		case "a":
			if href, ok := s.Attr("href"); ok && href != "" {
				fmt.Fprintf(&b, "[%s](%s)", inner(), href)
			} else {
				b.WriteString(inner())
			}
		case "p", "div":
			b.WriteString(inner())
			b.WriteString("\n\n")
		default:
			b.WriteString(inner())
		}
	})
	return b.String()
}

// emphasis wraps text in mark while keeping surrounding spaces outside the
// delimiters, where markdown requires them.
func emphasis(mark, text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	lead := text[:len(text)-len(strings.TrimLeft(text, " \t\n"))]
	trail := text[len(strings.TrimRight(text, " \t\n")):]
	return lead + mark + trimmed + mark + trail
}
