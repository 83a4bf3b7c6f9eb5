package jsonedit

import "sort"

// Modifiers are the keyboard modifiers held during a click.
type Modifiers uint8

const (
	// ModToggle is Ctrl on most platforms and Cmd on macOS.
	ModToggle Modifiers = 1 << iota
	// ModRange is Shift.
	ModRange
)

// Selection is a set of selected node ids plus the anchor of the last
// single or toggle click.
type Selection struct {
	ids  map[NodeID]struct{}
	last NodeID
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[NodeID]struct{})}
}

// Click applies a click on id. flat is the current flattened order.
//
// A plain click selects only id. A toggle click adds or removes id and
// moves the anchor only when adding. A range click selects the contiguous
// run of flat between the anchor and id, inclusive, and keeps the anchor;
// it is ignored when either end is missing from flat. Without an anchor a
// range click behaves like a plain click. Range wins when both modifiers
// are held.
func (s *Selection) Click(id NodeID, mods Modifiers, flat []NodeID) {
	switch {
	case mods&ModRange != 0 && s.last != "":
		start, end := indexOf(flat, s.last), indexOf(flat, id)
		if start < 0 || end < 0 {
			return
		}
		if start > end {
			start, end = end, start
		}
		s.ids = make(map[NodeID]struct{}, end-start+1)
		for _, n := range flat[start : end+1] {
			s.ids[n] = struct{}{}
		}
	case mods&ModToggle != 0:
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			return
		}
		s.ids[id] = struct{}{}
		s.last = id
	default:
		s.ids = map[NodeID]struct{}{id: {}}
		s.last = id
	}
}

// Clear empties the selection, as a click outside any node does.
func (s *Selection) Clear() {
	s.ids = make(map[NodeID]struct{})
	s.last = ""
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id NodeID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Last returns the anchor of range selection, which is also the paste
// target.
func (s *Selection) Last() (NodeID, bool) {
	return s.last, s.last != ""
}

// IDs returns the selected ids sorted lexically.
func (s *Selection) IDs() []NodeID {
	out := make([]NodeID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Ordered returns the selected ids that appear in flat, in flat order.
func (s *Selection) Ordered(flat []NodeID) []NodeID {
	return orderBy(s.ids, flat)
}

// Prune drops selected ids, and the anchor, that no longer appear in flat.
func (s *Selection) Prune(flat []NodeID) {
	present := make(map[NodeID]struct{}, len(flat))
	for _, id := range flat {
		present[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := present[id]; !ok {
			delete(s.ids, id)
		}
	}
	if _, ok := present[s.last]; !ok {
		s.last = ""
	}
}

func orderBy(set map[NodeID]struct{}, flat []NodeID) []NodeID {
	out := make([]NodeID, 0, len(set))
	for _, id := range flat {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func indexOf(flat []NodeID, id NodeID) int {
	for i, n := range flat {
		if n == id {
			return i
		}
	}
	return -1
}
