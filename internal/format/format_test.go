package format

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/brandstudio/internal/dom"
)

func setup(t *testing.T, markup string) (*dom.Document, *dom.Selection, *Executor) {
	t.Helper()
	d, err := dom.NewDocument(markup)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	sel := dom.NewSelection()
	return d, sel, NewExecutor(d, sel)
}

func TestToggleBold(t *testing.T) {
	d, sel, ex := setup(t, "Hello world")
	sel.SelectText(d.Root(), 0, 5)

	if err := ex.Exec(Bold, ""); err != nil {
		t.Fatalf("bold on: %v", err)
	}
	if got := d.HTML(); got != "<b>Hello</b> world" {
		t.Errorf("after bold on = %q", got)
	}
	on, err := ex.QueryState(Bold)
	if err != nil || !on {
		t.Errorf("QueryState(bold) = %v, %v; want true", on, err)
	}

	if err := ex.Exec(Bold, ""); err != nil {
		t.Fatalf("bold off: %v", err)
	}
	if got := d.HTML(); got != "Hello world" {
		t.Errorf("after bold off = %q", got)
	}
	if d.MarkerCount() != 0 {
		t.Errorf("markers left: %d", d.MarkerCount())
	}
}

func TestBoldPartialOverlapMerges(t *testing.T) {
	d, sel, ex := setup(t, "<b>Hello</b> world")
	sel.SelectText(d.Root(), 3, 8)

	if err := ex.Exec(Bold, ""); err != nil {
		t.Fatalf("bold: %v", err)
	}
	if got := d.HTML(); got != "<b>Hello wo</b>rld" {
		t.Errorf("HTML = %q, want %q", got, "<b>Hello wo</b>rld")
	}
	start, end, _ := sel.TextOffsets(d.Root())
	if start != 3 || end != 8 {
		t.Errorf("selection = [%d,%d), want [3,8)", start, end)
	}
}

func TestRemoveFormat(t *testing.T) {
	d, sel, ex := setup(t, `<b>Bold</b> and <i>it</i> <font color="#ff0000">red</font>`)
	if err := ex.Exec(SelectAll, ""); err != nil {
		t.Fatalf("selectAll: %v", err)
	}
	if err := ex.Exec(RemoveFormat, ""); err != nil {
		t.Fatalf("removeFormat: %v", err)
	}
	if got := d.HTML(); got != "Bold and it red" {
		t.Errorf("HTML = %q", got)
	}
	if !sel.Within(d.Root()) {
		t.Error("selection lost")
	}
}

func TestForeColor(t *testing.T) {
	d, sel, ex := setup(t, `Hello <font color="#000000">world</font>`)
	sel.SelectText(d.Root(), 0, 11)

	if err := ex.Exec(ForeColor, "#111111"); err != nil {
		t.Fatalf("foreColor: %v", err)
	}
	if got := d.HTML(); got != `<font color="#111111">Hello world</font>` {
		t.Errorf("HTML = %q", got)
	}
	if err := ex.Exec(ForeColor, ""); !errors.Is(err, ErrMissingValue) {
		t.Errorf("empty colour err = %v, want ErrMissingValue", err)
	}
}

func TestExecErrors(t *testing.T) {
	d, sel, ex := setup(t, "text")
	if err := ex.Exec(Bold, ""); !errors.Is(err, ErrNoSelection) {
		t.Errorf("no selection err = %v", err)
	}
	sel.SelectText(d.Root(), 0, 2)
	if err := ex.Exec(Command("strikeThrough"), ""); !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("unknown command err = %v", err)
	}
}

func TestCollapsedIsNoop(t *testing.T) {
	d, sel, ex := setup(t, "<i>text</i>")
	sel.SelectText(d.Root(), 2, 2)
	if err := ex.Exec(Underline, ""); err != nil {
		t.Fatalf("underline: %v", err)
	}
	if got := d.HTML(); got != "<i>text</i>" {
		t.Errorf("HTML = %q", got)
	}
	on, err := ex.QueryState(Italic)
	if err != nil || !on {
		t.Errorf("caret inside <i> should report italic, got %v %v", on, err)
	}
}

type stubCommander struct {
	state map[Command]bool
	err   error
	execs []Command
}

func (s *stubCommander) Exec(cmd Command, value string) error {
	s.execs = append(s.execs, cmd)
	return s.err
}

func (s *stubCommander) QueryState(cmd Command) (bool, error) {
	return s.state[cmd], s.err
}

func TestTrackerOnlyReportsChanges(t *testing.T) {
	q := &stubCommander{state: map[Command]bool{Bold: true}}
	tr := NewTracker(q)

	if !tr.Update() {
		t.Fatal("first update should report a change")
	}
	if tr.Update() {
		t.Error("unchanged state reported as change")
	}
	if got := tr.State(); !got.Bold || got.Italic || got.Underline {
		t.Errorf("state = %+v", got)
	}

	q.err = errors.New("detached")
	if !tr.Update() {
		t.Error("reset after failure should report a change")
	}
	if got := tr.State(); got != (State{}) {
		t.Errorf("state after failure = %+v, want all false", got)
	}
}

func TestTrackerThrottle(t *testing.T) {
	q := &stubCommander{state: map[Command]bool{Underline: true}}
	tr := NewTracker(q)

	seq, ok := tr.Schedule()
	if !ok {
		t.Fatal("first schedule refused")
	}
	if _, ok := tr.Schedule(); ok {
		t.Error("second schedule accepted while pending")
	}
	if !tr.Fire(seq) {
		t.Error("fire should report the new state")
	}
	if tr.Fire(seq) {
		t.Error("fire ran twice for one schedule")
	}

	seq, _ = tr.Schedule()
	tr.Cancel()
	if tr.Fire(seq) {
		t.Error("cancelled check fired")
	}
}

type focusRecorder struct{ focused int }

func (f *focusRecorder) Focus() { f.focused++ }

func TestExecFormatCommandSwallowsErrors(t *testing.T) {
	q := &stubCommander{err: errors.New("boom")}
	f := &focusRecorder{}
	ran := false

	cmd := ExecFormatCommand(q, f, "ed-1", Bold, "", func() tea.Cmd {
		ran = true
		return nil
	})
	if len(q.execs) != 1 || f.focused != 1 {
		t.Fatalf("execs=%v focused=%d", q.execs, f.focused)
	}
	msg, ok := cmd().(FrameMsg)
	if !ok || msg.ID != "ed-1" {
		t.Fatalf("cmd produced %#v", msg)
	}
	if ran {
		t.Error("follow-up ran before its frame")
	}
	msg.Run()
	if !ran {
		t.Error("follow-up did not run")
	}
}
