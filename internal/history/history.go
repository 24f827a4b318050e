// Package history keeps a bounded, debounced undo/redo buffer of serialised
// editor content.
package history

import "time"

const (
	// DefaultMaxSize bounds the buffer when New is given no size.
	DefaultMaxSize = 50
	// Debounce is how long staged content must stay unchanged before it is
	// committed.
	Debounce = 300 * time.Millisecond
)

// History is a linear undo buffer. Snapshots are staged on every edit and
// committed once the caller's debounce timer for the latest stage fires.
type History struct {
	items   []string
	index   int
	maxSize int

	lastStaged string
	pending    string
	hasPending bool
	seq        uint64
	replaying  bool
}

// New returns a history holding initial as its only entry.
func New(initial string, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{
		items:      []string{initial},
		maxSize:    maxSize,
		lastStaged: initial,
	}
}

// Stage records content as the pending snapshot and returns the sequence
// number the debounce timer must hand back to Commit. Content equal to the
// last staged value, or staged while a snapshot is being replayed, is
// ignored.
func (h *History) Stage(content string) (uint64, bool) {
	if h.replaying || content == h.lastStaged {
		return 0, false
	}
	h.lastStaged = content
	h.pending = content
	h.hasPending = true
	h.seq++
	return h.seq, true
}

// Commit writes the pending snapshot if seq belongs to the latest Stage. It
// reports whether a new entry was added.
func (h *History) Commit(seq uint64) bool {
	if !h.hasPending || seq != h.seq {
		return false
	}
	return h.flush()
}

func (h *History) flush() bool {
	if !h.hasPending {
		return false
	}
	h.hasPending = false
	content := h.pending
	if content == h.items[h.index] {
		return false
	}
	h.items = append(h.items[:h.index+1], content)
	if over := len(h.items) - h.maxSize; over > 0 {
		h.items = append([]string(nil), h.items[over:]...)
	}
	h.index = len(h.items) - 1
	return true
}

// Undo steps back one entry and returns it. Pending content is committed
// first so the step lands on what the user last saw; that commit happens even
// at the first entry, so Undo there can grow Items by one before stepping
// back onto the original. The history stays in replay mode until EndReplay.
func (h *History) Undo() (string, bool) {
	h.flush()
	h.seq++
	if h.index == 0 {
		return "", false
	}
	h.index--
	return h.replay(), true
}

// Redo steps forward one entry and returns it.
func (h *History) Redo() (string, bool) {
	h.flush()
	h.seq++
	if h.index >= len(h.items)-1 {
		return "", false
	}
	h.index++
	return h.replay(), true
}

func (h *History) replay() string {
	h.replaying = true
	h.lastStaged = h.items[h.index]
	return h.lastStaged
}

// EndReplay leaves replay mode once the replayed snapshot is in the document.
func (h *History) EndReplay() {
	h.replaying = false
}

// Cancel drops the pending snapshot, invalidating any running timer.
func (h *History) Cancel() {
	h.hasPending = false
	h.seq++
}

// Replaying reports whether a snapshot is being written back.
func (h *History) Replaying() bool { return h.replaying }

// Pending reports whether a staged snapshot awaits its timer.
func (h *History) Pending() bool { return h.hasPending }

// Items returns a copy of the entries, oldest first.
func (h *History) Items() []string {
	return append([]string(nil), h.items...)
}

// Index returns the position of the current entry.
func (h *History) Index() int { return h.index }

// Current returns the current entry.
func (h *History) Current() string { return h.items[h.index] }

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.index > 0 || (h.hasPending && h.pending != h.items[h.index]) }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.index < len(h.items)-1 && !h.hasPending }
