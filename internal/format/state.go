package format

import "time"

// Throttle is how long the tracker waits after a selection change before it
// queries the formatting state.
const Throttle = 100 * time.Millisecond

// State reports which toggles are active at the caret.
type State struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Tracker keeps State in sync with the selection.
type Tracker struct {
	q       Commander
	state   State
	seq     uint64
	pending bool
}

// NewTracker returns a tracker querying q.
func NewTracker(q Commander) *Tracker {
	return &Tracker{q: q}
}

// State returns the last computed state.
func (t *Tracker) State() State {
	return t.state
}

// Update recomputes the state and reports whether it changed. Any failing
// query resets every flag to false.
func (t *Tracker) Update() bool {
	var next State
	var err error
	if next.Bold, err = t.q.QueryState(Bold); err == nil {
		if next.Italic, err = t.q.QueryState(Italic); err == nil {
			next.Underline, err = t.q.QueryState(Underline)
		}
	}
	if err != nil {
		next = State{}
	}
	if next == t.state {
		return false
	}
	t.state = next
	return true
}

// Schedule arms the throttle. It returns false while a check is already
// pending, so bursts of selection changes produce one query.
func (t *Tracker) Schedule() (uint64, bool) {
	if t.pending {
		return 0, false
	}
	t.pending = true
	t.seq++
	return t.seq, true
}

// Fire runs the throttled check armed under seq and reports whether the state
// changed. Stale or cancelled sequences are ignored.
func (t *Tracker) Fire(seq uint64) bool {
	if !t.pending || seq != t.seq {
		return false
	}
	t.pending = false
	return t.Update()
}

// Cancel drops any pending check.
func (t *Tracker) Cancel() {
	t.pending = false
	t.seq++
}
