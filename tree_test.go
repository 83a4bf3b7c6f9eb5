package jsonedit

import (
	"reflect"
	"testing"
)

// TestBuildTree tests node descriptors
func TestBuildTree(t *testing.T) {
	tree := BuildTree(MustParse(`{"a":[true],"b":{},"c":null}`))

	if tree.ID != RootID || tree.Name != "root" || tree.Type != TypeObject {
		t.Fatalf("Unexpected root: %+v", tree)
	}
	if tree.Draggable || tree.Droppable || tree.IsKeyEditable {
		t.Error("Expected the root to be fixed")
	}
	if len(tree.Children) != 3 {
		t.Fatalf("Expected 3 children, got %d", len(tree.Children))
	}

	a := tree.Children[0]
	if a.ID != "root.a" || !a.IsKeyEditable || !a.Draggable || !a.Droppable {
		t.Errorf("Unexpected member node: %+v", a)
	}
	item := a.Children[0]
	if item.ID != "root.a.0" || item.Name != "0" || item.IsKeyEditable {
		t.Errorf("Unexpected array item node: %+v", item)
	}
	if item.Children != nil {
		t.Error("Expected nil children for a primitive")
	}

	b := tree.Children[1]
	if b.Children == nil || len(b.Children) != 0 {
		t.Errorf("Expected empty non-nil children for {}, got %#v", b.Children)
	}
}

// TestFlatten tests pre-order flattening
func TestFlatten(t *testing.T) {
	doc := MustParse(`{"a":{"x":1,"y":[2,3]},"b":4,"c.d":5}`)
	want := []NodeID{
		"root",
		"root.a",
		"root.a.x",
		"root.a.y",
		"root.a.y.0",
		"root.a.y.1",
		"root.b",
		`root.c\.d`,
	}

	if got := Flatten(BuildTree(doc)); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten: expected %v, got %v", want, got)
	}
	if got := FlattenDocument(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("FlattenDocument: expected %v, got %v", want, got)
	}

	// every flattened id resolves
	for _, id := range want {
		if _, err := Resolve(doc, id); err != nil {
			t.Errorf("Resolve(%s) failed: %v", id, err)
		}
	}
}
