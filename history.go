package jsonedit

// History is a linear undo/redo log of whole-document snapshots. Recording
// a new snapshot discards the redo side.
//
// A History is not safe for concurrent use; Session serializes access.
type History struct {
	past   []Value
	future []Value // future[0] is the next redo
	limit  int
}

// NewHistory returns an empty history keeping at most limit undo
// snapshots. A limit of 0 keeps every snapshot.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Record pushes the pre-mutation document onto the undo side and clears
// the redo side. When the limit is reached the oldest snapshot is evicted.
func (h *History) Record(current Value) {
	h.past = append(h.past, current.Clone())
	if h.limit > 0 && len(h.past) > h.limit {
		drop := len(h.past) - h.limit
		h.past = append(h.past[:0:0], h.past[drop:]...)
	}
	h.future = nil
}

// Undo returns the previous document and moves current to the redo side.
// It reports false when there is nothing to undo.
func (h *History) Undo(current Value) (Value, bool) {
	if len(h.past) == 0 {
		return Value{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]Value{current.Clone()}, h.future...)
	return prev.Clone(), true
}

// Redo returns the next document and moves current to the undo side. It
// reports false when there is nothing to redo.
func (h *History) Redo(current Value) (Value, bool) {
	if len(h.future) == 0 {
		return Value{}, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current.Clone())
	return next.Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the number of undo and redo snapshots held.
func (h *History) Depth() (undo, redo int) { return len(h.past), len(h.future) }

// Clear drops every snapshot.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}
