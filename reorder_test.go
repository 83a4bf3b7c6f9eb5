package jsonedit

import (
	"strconv"
	"testing"
)

// TestReorder tests moving siblings
func TestReorder(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		source NodeID
		target NodeID
		want   string
	}{
		{"array forward", `[1,2,3]`, "root.0", "root.2", `[2,3,1]`},
		{"array backward", `[1,2,3]`, "root.2", "root.0", `[3,1,2]`},
		{"array adjacent", `[1,2,3]`, "root.0", "root.1", `[2,1,3]`},
		{"object forward", `{"a":1,"b":2,"c":3}`, "root.a", "root.c", `{"b":2,"c":3,"a":1}`},
		{"object backward", `{"a":1,"b":2,"c":3}`, "root.c", "root.a", `{"c":3,"a":1,"b":2}`},
		{"nested", `{"x":{"list":["a","b"]}}`, "root.x.list.1", "root.x.list.0", `{"x":{"list":["b","a"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Reorder(MustParse(tt.doc), tt.source, tt.target)
			if err != nil {
				t.Fatalf("Reorder failed: %v", err)
			}
			if next.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, next)
			}
		})
	}
}

// TestReorderNoOps tests drops that leave the document unchanged
func TestReorderNoOps(t *testing.T) {
	doc := MustParse(`{"a":[1,2],"b":{"c":1}}`)

	tests := []struct {
		source NodeID
		target NodeID
	}{
		{"root.a.0", "root.a.0"},
		{"root.a.0", "root.b.c"},
		{"root.a", "root.a.1"},
		{RootID, "root.a"},
		{"root.a", RootID},
	}
	for _, tt := range tests {
		next, err := Reorder(doc, tt.source, tt.target)
		if err != nil {
			t.Errorf("Reorder(%s, %s) failed: %v", tt.source, tt.target, err)
			continue
		}
		if !next.Equal(doc) {
			t.Errorf("Reorder(%s, %s) changed the document: %s", tt.source, tt.target, next)
		}
	}
}

// TestReorderKeepsMembers tests that reordering is a permutation
func TestReorderKeepsMembers(t *testing.T) {
	doc := MustParse(`[0,1,2,3,4,5]`)
	for from := 0; from < 6; from++ {
		for to := 0; to < 6; to++ {
			src := ChildID(RootID, strconv.Itoa(from))
			dst := ChildID(RootID, strconv.Itoa(to))
			next, err := Reorder(doc, src, dst)
			if err != nil {
				t.Fatalf("Reorder(%s, %s) failed: %v", src, dst, err)
			}
			if next.Len() != 6 {
				t.Fatalf("Reorder(%s, %s) changed length to %d", src, dst, next.Len())
			}
			seen := make(map[float64]bool)
			for _, item := range next.Items() {
				seen[item.Num] = true
			}
			if len(seen) != 6 {
				t.Errorf("Reorder(%s, %s) lost items: %s", src, dst, next)
			}
			if moved, _ := next.Index(to); moved.Num != float64(from) {
				t.Errorf("Reorder(%s, %s): expected %d at %d, got %s", src, dst, from, to, moved)
			}
		}
	}
}

