package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/brandstudio/internal/dom"
	"github.com/zam-dot/brandstudio/internal/palette"
)

func newStudio(t *testing.T, stored map[string]string) *model {
	t.Helper()
	config := DefaultConfig()
	config.StoreFile = filepath.Join(t.TempDir(), "store.json")
	config.Style = "notty"
	config.Fields[0].Content = "Hello"
	m, err := newModel(config, stored)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m
}

// run executes cmds and feeds every resulting message back into the studio.
func run(t *testing.T, m *model, cmds ...tea.Cmd) {
	t.Helper()
	queue := append([]tea.Cmd(nil), cmds...)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func send(t *testing.T, m *model, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		run(t, m, cmd)
	}
}

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestStoredContentWins(t *testing.T) {
	m := newStudio(t, map[string]string{"body": "<i>saved</i>"})
	if got := m.content["headline"]; got != "Hello" {
		t.Errorf("headline = %q", got)
	}
	if got := m.fields[1].editor.Content(); got != "<i>saved</i>" {
		t.Errorf("body = %q", got)
	}
	if m.dirty {
		t.Error("fresh studio is dirty")
	}
}

func TestTypingFillsContentMap(t *testing.T) {
	m := newStudio(t, nil)
	send(t, m, typed("!"))
	if got := m.content["headline"]; got != "Hello!" {
		t.Errorf("content = %q", got)
	}
	if !m.dirty {
		t.Error("edit did not mark the studio dirty")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := newStudio(t, nil)

	send(t, m, key(tea.KeyTab))
	if m.focus != 1 || !m.fields[1].editor.Focused() || m.fields[0].editor.Focused() {
		t.Fatalf("focus = %d", m.focus)
	}
	send(t, m, typed("body"))
	if m.content["body"] != "body" || m.content["headline"] != "Hello" {
		t.Errorf("content = %v", m.content)
	}

	send(t, m, key(tea.KeyTab))
	if m.focus != 0 {
		t.Errorf("tab did not wrap, focus = %d", m.focus)
	}
	send(t, m, key(tea.KeyShiftTab))
	if m.focus != 1 {
		t.Errorf("shift+tab focus = %d", m.focus)
	}
	if !m.sel.Within(m.fields[1].editor.Document().Root()) {
		t.Error("caret did not follow focus")
	}
}

func TestSaveWritesStore(t *testing.T) {
	m := newStudio(t, nil)
	send(t, m, typed("!"), key(tea.KeyCtrlS))

	saved, err := loadStore(m.config.StoreFile)
	if err != nil {
		t.Fatal(err)
	}
	if saved["headline"] != "Hello!" || saved["body"] != "" {
		t.Errorf("saved = %v", saved)
	}
	if m.dirty || !strings.Contains(m.status, "Saved") {
		t.Errorf("dirty=%v status=%q", m.dirty, m.status)
	}
}

func TestSaveFailureShowsError(t *testing.T) {
	m := newStudio(t, nil)
	m.config.StoreFile = filepath.Join(t.TempDir(), "missing", "store.json")
	send(t, m, key(tea.KeyCtrlS))
	if m.errMsg == "" {
		t.Error("failed save reported no error")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("error not shown")
	}
}

func TestQuitSavesDirtyContent(t *testing.T) {
	m := newStudio(t, nil)
	send(t, m, typed("!"))
	_, cmd := m.Update(key(tea.KeyCtrlC))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
	if _, err := os.Stat(m.config.StoreFile); err != nil {
		t.Errorf("store not written on quit: %v", err)
	}
	if _, next := m.Update(typed("x")); next != nil || m.content["headline"] != "Hello!" {
		t.Error("editor still live after quit")
	}
}

func TestLoadStoreMissingFile(t *testing.T) {
	got, err := loadStore(filepath.Join(t.TempDir(), "none.json"))
	if err != nil || len(got) != 0 {
		t.Errorf("loadStore = %v, %v", got, err)
	}
	bad := writeFile(t, "bad.json", "{")
	if _, err := loadStore(bad); err == nil {
		t.Error("malformed store accepted")
	}
}

func TestCopyMarkup(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := newStudio(t, nil)
	ed := m.fields[0].editor
	send(t, m, key(tea.KeyCtrlO))

	if !strings.HasPrefix(copied, "<style>") || !strings.Contains(copied, ed.Stylesheet()) {
		t.Errorf("stylesheet missing:\n%s", copied)
	}
	if !strings.Contains(copied, `class="`+ed.ScopeClass()+`"`) || !strings.Contains(copied, ">Hello</div>") {
		t.Errorf("content not wrapped in its scope:\n%s", copied)
	}
	if !strings.Contains(m.status, "Copied") {
		t.Errorf("status = %q", m.status)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	send(t, m, key(tea.KeyCtrlT))
	if !strings.Contains(m.errMsg, "no clipboard") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestExports(t *testing.T) {
	m := newStudio(t, map[string]string{
		"headline": "ab<br>c",
		"body":     `<b>Hello</b> <i>big </i><a href="https://x.io">world</a>`,
	})

	if got := exportText(m.fields[0].editor); got != "ab\nc" {
		t.Errorf("exportText = %q", got)
	}
	if got := m.fields[0].editor.Content(); got != "ab<br/>c" {
		t.Errorf("export changed the document: %q", got)
	}
	if got, want := exportMarkdown(m.fields[1].editor), "**Hello** *big* [world](https://x.io)"; got != want {
		t.Errorf("exportMarkdown = %q, want %q", got, want)
	}
}

func TestHelpAndPreviewOverlays(t *testing.T) {
	m := newStudio(t, nil)

	send(t, m, key(tea.KeyF1))
	if !m.showHelp || !strings.Contains(m.View(), "Editing") {
		t.Fatal("help not shown")
	}
	send(t, m, typed("x"))
	if m.content["headline"] != "Hello" {
		t.Error("keys reached the editor under the help page")
	}

	send(t, m, key(tea.KeyCtrlP))
	if m.showHelp || !m.showPreview || !strings.Contains(m.View(), "empty") {
		t.Error("preview not shown")
	}

	send(t, m, key(tea.KeyEsc))
	if m.showHelp || m.showPreview {
		t.Error("esc did not close the overlay")
	}
}

func TestViewListsFields(t *testing.T) {
	m := newStudio(t, nil)
	view := m.View()
	for _, want := range []string{"Brand Studio", "Headline", "Body", "Hello", "Field: Headline"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
	if len(m.offsets) != 2 || m.offsets[1] <= m.offsets[0] {
		t.Errorf("offsets = %v", m.offsets)
	}
}

func TestConfigChangeRecolours(t *testing.T) {
	m := newStudio(t, nil)
	config := DefaultConfig()
	config.Brand = palette.Brand{Highlight: "#000000"}
	send(t, m, configChangedMsg{config: config})

	if m.config.Brand != config.Brand || m.status != "Brand reloaded" {
		t.Fatalf("brand = %+v status = %q", m.config.Brand, m.status)
	}
	ed := m.fields[0].editor
	send(t, m, key(tea.KeyCtrlA), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}, Alt: true})
	style := dom.ParseStyle(ed.Document().Find("span").AttrOr("style", ""))
	if style["background-color"] != "rgba(0, 0, 0, 0.6)" {
		t.Errorf("background = %q in %s", style["background-color"], ed.Content())
	}
}

func TestConfigChangeReloadsFields(t *testing.T) {
	m := newStudio(t, map[string]string{"body": "<i>saved</i>"})
	headline := m.fields[0].editor
	before := lipgloss.Height(headline.View())

	config := DefaultConfig()
	config.Fields[0].Content = "Welcome"
	config.Fields[0].Height += 2
	config.Fields[1].Content = "from the file"
	send(t, m, configChangedMsg{config: config})

	if got := headline.Content(); got != "Welcome" || m.content["headline"] != "Welcome" {
		t.Errorf("headline = %q, content map = %q", got, m.content["headline"])
	}
	if !m.dirty {
		t.Error("reloaded content did not mark the studio dirty")
	}
	if got := m.fields[1].editor.Content(); got != "<i>saved</i>" {
		t.Errorf("stored body replaced: %q", got)
	}
	if after := lipgloss.Height(headline.View()); after <= before {
		t.Errorf("height %d -> %d, want taller", before, after)
	}
	if m.status != "Fields reloaded" {
		t.Errorf("status = %q", m.status)
	}

	// An edited field keeps its text when the file changes again.
	send(t, m, key(tea.KeyEnd), typed("!"))
	config.Fields[0].Content = "Again"
	send(t, m, configChangedMsg{config: config})
	if got := headline.Content(); got != "Welcome!" {
		t.Errorf("edited headline replaced: %q", got)
	}
}

func TestWatchConfig(t *testing.T) {
	path := writeFile(t, "studio.toml", "[brand]\nhighlight = \"#111111\"\n")
	w, err := newConfigWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	got := make(chan tea.Msg, 1)
	go func() {
		for {
			msg := watchConfig(w, path)()
			changed, ok := msg.(configChangedMsg)
			// A truncating write can be seen before the new content lands.
			if ok && changed.config.Brand.Highlight == "" {
				continue
			}
			got <- msg
			return
		}
	}()

	if err := os.WriteFile(path, []byte("[brand]\nhighlight = \"#222222\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-got:
		changed, ok := msg.(configChangedMsg)
		if !ok {
			t.Fatalf("msg = %#v", msg)
		}
		if changed.config.Brand.Highlight != "#222222" {
			t.Errorf("highlight = %q", changed.config.Brand.Highlight)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change seen")
	}
}
