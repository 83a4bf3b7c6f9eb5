package jsonedit

import (
	"reflect"
	"testing"
)

var selectionFlat = []NodeID{
	"root",
	"root.name",
	"root.features",
	"root.features.0",
	"root.features.1",
	"root.settings",
	"root.settings.theme",
}

// TestSelectionPlainClick tests single selection
func TestSelectionPlainClick(t *testing.T) {
	s := NewSelection()
	s.Click("root.name", 0, selectionFlat)
	s.Click("root.settings", 0, selectionFlat)

	if s.Len() != 1 || !s.Contains("root.settings") {
		t.Errorf("Expected only root.settings, got %v", s.IDs())
	}
	if last, ok := s.Last(); !ok || last != "root.settings" {
		t.Errorf("Expected anchor root.settings, got %q", last)
	}
}

// TestSelectionToggle tests adding and removing with the toggle modifier
func TestSelectionToggle(t *testing.T) {
	s := NewSelection()
	s.Click("root.name", 0, selectionFlat)
	s.Click("root.features.1", ModToggle, selectionFlat)
	s.Click("root.settings", ModToggle, selectionFlat)

	want := []NodeID{"root.name", "root.features.1", "root.settings"}
	if got := s.Ordered(selectionFlat); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// removing keeps the anchor where it was
	s.Click("root.name", ModToggle, selectionFlat)
	if s.Contains("root.name") {
		t.Error("Expected toggle to remove root.name")
	}
	if last, _ := s.Last(); last != "root.settings" {
		t.Errorf("Expected anchor root.settings, got %q", last)
	}
}

// TestSelectionRange tests contiguous selection in either direction
func TestSelectionRange(t *testing.T) {
	for start := range selectionFlat {
		for end := range selectionFlat {
			s := NewSelection()
			s.Click(selectionFlat[start], 0, selectionFlat)
			s.Click(selectionFlat[end], ModRange, selectionFlat)

			lo, hi := start, end
			if lo > hi {
				lo, hi = hi, lo
			}
			if s.Len() != hi-lo+1 {
				t.Errorf("Range %d..%d: expected %d ids, got %d", start, end, hi-lo+1, s.Len())
			}
			if got := s.Ordered(selectionFlat); !reflect.DeepEqual(got, selectionFlat[lo:hi+1]) {
				t.Errorf("Range %d..%d: unexpected ids %v", start, end, got)
			}
			if last, _ := s.Last(); last != selectionFlat[start] {
				t.Errorf("Range %d..%d: anchor moved to %q", start, end, last)
			}
		}
	}
}

// TestSelectionRangeEdgeCases tests stale endpoints and missing anchors
func TestSelectionRangeEdgeCases(t *testing.T) {
	s := NewSelection()

	// no anchor: behaves like a plain click
	s.Click("root.features", ModRange, selectionFlat)
	if s.Len() != 1 || !s.Contains("root.features") {
		t.Errorf("Expected plain selection, got %v", s.IDs())
	}

	// endpoint missing from flat: ignored
	s.Click("root.gone", ModRange, selectionFlat)
	if s.Len() != 1 || !s.Contains("root.features") {
		t.Errorf("Expected unchanged selection, got %v", s.IDs())
	}

	// range wins over toggle
	s.Click("root.features.1", ModRange|ModToggle, selectionFlat)
	if s.Len() != 3 {
		t.Errorf("Expected range of 3, got %v", s.IDs())
	}
}

// TestSelectionPrune tests dropping ids that no longer exist
func TestSelectionPrune(t *testing.T) {
	s := NewSelection()
	s.Click("root.name", 0, selectionFlat)
	s.Click("root.features.1", ModToggle, selectionFlat)

	s.Prune(selectionFlat[:4])
	if s.Contains("root.features.1") {
		t.Error("Expected root.features.1 to be pruned")
	}
	if !s.Contains("root.name") {
		t.Error("Expected root.name to survive")
	}
	if _, ok := s.Last(); ok {
		t.Error("Expected the pruned anchor to be cleared")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Expected empty selection, got %v", s.IDs())
	}
}
