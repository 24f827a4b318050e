package history

import (
	"reflect"
	"testing"
)

// edit stages content and fires its timer at once.
func edit(t *testing.T, h *History, content string) {
	t.Helper()
	seq, ok := h.Stage(content)
	if !ok {
		t.Fatalf("Stage(%q) ignored", content)
	}
	if !h.Commit(seq) {
		t.Fatalf("Commit for %q added nothing", content)
	}
}

func TestNew(t *testing.T) {
	h := New("start", 0)
	if got := h.Items(); !reflect.DeepEqual(got, []string{"start"}) {
		t.Errorf("Items() = %v", got)
	}
	if h.Index() != 0 || h.Current() != "start" {
		t.Errorf("index %d current %q", h.Index(), h.Current())
	}
	if h.maxSize != DefaultMaxSize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultMaxSize)
	}
}

func TestDebounceCoalesces(t *testing.T) {
	h := New("", 10)
	var seqs []uint64
	for _, s := range []string{"a", "ab", "abc"} {
		seq, ok := h.Stage(s)
		if !ok {
			t.Fatalf("Stage(%q) ignored", s)
		}
		seqs = append(seqs, seq)
	}
	for _, seq := range seqs[:2] {
		if h.Commit(seq) {
			t.Errorf("stale timer %d committed", seq)
		}
	}
	if !h.Commit(seqs[2]) {
		t.Fatal("latest timer did not commit")
	}
	if got := h.Items(); !reflect.DeepEqual(got, []string{"", "abc"}) {
		t.Errorf("Items() = %v", got)
	}
}

func TestStageIgnoresRepeats(t *testing.T) {
	h := New("x", 10)
	if _, ok := h.Stage("x"); ok {
		t.Error("staging the initial content was accepted")
	}
	edit(t, h, "y")
	if _, ok := h.Stage("y"); ok {
		t.Error("staging the same content twice was accepted")
	}
}

func TestBoundariesAreNoops(t *testing.T) {
	h := New("a", 10)
	if _, ok := h.Undo(); ok {
		t.Error("Undo at index 0 moved")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo at the end moved")
	}
	if h.Index() != 0 || len(h.Items()) != 1 || h.Replaying() {
		t.Errorf("state changed: index %d items %v replaying %v", h.Index(), h.Items(), h.Replaying())
	}

	edit(t, h, "b")
	if _, ok := h.Redo(); ok {
		t.Error("Redo past the newest entry moved")
	}
	if h.Index() != 1 {
		t.Errorf("index = %d", h.Index())
	}
}

func TestUndoRedo(t *testing.T) {
	h := New("a", 10)
	edit(t, h, "b")
	edit(t, h, "c")

	got, ok := h.Undo()
	if !ok || got != "b" || !h.Replaying() {
		t.Fatalf("Undo() = %q, %v replaying=%v", got, ok, h.Replaying())
	}
	if _, ok := h.Stage("b"); ok {
		t.Error("replayed content was staged")
	}
	h.EndReplay()
	if _, ok := h.Stage("b"); ok {
		t.Error("replayed content staged after replay ended")
	}

	got, ok = h.Redo()
	if !ok || got != "c" {
		t.Errorf("Redo() = %q, %v", got, ok)
	}
	h.EndReplay()
	if !h.CanUndo() || h.CanRedo() {
		t.Errorf("CanUndo %v CanRedo %v", h.CanUndo(), h.CanRedo())
	}
}

func TestNewEditDiscardsRedoBranch(t *testing.T) {
	h := New("", 10)
	edit(t, h, "A")
	h.Undo()
	h.EndReplay()
	edit(t, h, "B")

	if got := h.Items(); !reflect.DeepEqual(got, []string{"", "B"}) {
		t.Errorf("Items() = %v", got)
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo restored the discarded branch")
	}
	if h.Current() != "B" {
		t.Errorf("Current() = %q", h.Current())
	}
}

func TestUndoFlushesPending(t *testing.T) {
	h := New("a", 10)
	h.Stage("ab")
	if !h.CanUndo() {
		t.Error("pending edit should be undoable")
	}
	got, ok := h.Undo()
	if !ok || got != "a" {
		t.Errorf("Undo() = %q, %v", got, ok)
	}
	if !reflect.DeepEqual(h.Items(), []string{"a", "ab"}) {
		t.Errorf("Items() = %v", h.Items())
	}
}

func TestEvictsOldest(t *testing.T) {
	h := New("0", 3)
	for _, s := range []string{"1", "2", "3", "4"} {
		edit(t, h, s)
	}
	if got := h.Items(); !reflect.DeepEqual(got, []string{"2", "3", "4"}) {
		t.Errorf("Items() = %v", got)
	}
	if h.Index() != 2 {
		t.Errorf("Index() = %d", h.Index())
	}
}

func TestCancel(t *testing.T) {
	h := New("", 10)
	seq, _ := h.Stage("draft")
	h.Cancel()
	if h.Commit(seq) {
		t.Error("cancelled stage committed")
	}
	if h.Pending() {
		t.Error("stage still pending after Cancel")
	}
}
