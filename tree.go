package jsonedit

import "strconv"

// Node describes one document location for a tree widget.
type Node struct {
	ID    NodeID
	Name  string
	Value Value
	Type  ValueType

	// Children is nil for primitives and null, and non-nil (possibly
	// empty) for objects and arrays.
	Children []Node

	// IsKeyEditable is set for object members, whose key can be renamed.
	IsKeyEditable bool
	Draggable     bool
	Droppable     bool
}

// BuildTree returns the descriptor tree for doc, rooted at RootID.
func BuildTree(doc Value) Node {
	return buildNode(doc, RootID, rootSegment, TypeUndefined)
}

func buildNode(v Value, id NodeID, name string, parentType ValueType) Node {
	n := Node{
		ID:            id,
		Name:          name,
		Value:         v,
		Type:          v.Type,
		IsKeyEditable: parentType == TypeObject,
		Draggable:     !id.IsRoot(),
		Droppable:     !id.IsRoot(),
	}
	switch v.Type {
	case TypeObject:
		n.Children = make([]Node, 0, len(v.members))
		for _, m := range v.members {
			n.Children = append(n.Children, buildNode(m.Value, ChildID(id, m.Key), m.Key, TypeObject))
		}
	case TypeArray:
		n.Children = make([]Node, 0, len(v.items))
		for i, item := range v.items {
			key := strconv.Itoa(i)
			n.Children = append(n.Children, buildNode(item, ChildID(id, key), key, TypeArray))
		}
	}
	return n
}

// Flatten lists every node id of tree in depth-first pre-order, regardless
// of which nodes a view has expanded. The result is the coordinate space
// for range selection and clipboard ordering.
func Flatten(tree Node) []NodeID {
	var out []NodeID
	var walk func(n Node)
	walk = func(n Node) {
		out = append(out, n.ID)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	return out
}

// FlattenDocument is Flatten(BuildTree(doc)) without building descriptors.
func FlattenDocument(doc Value) []NodeID {
	var out []NodeID
	var walk func(v Value, id NodeID)
	walk = func(v Value, id NodeID) {
		out = append(out, id)
		switch v.Type {
		case TypeObject:
			for _, m := range v.members {
				walk(m.Value, ChildID(id, m.Key))
			}
		case TypeArray:
			for i, item := range v.items {
				walk(item, ChildID(id, strconv.Itoa(i)))
			}
		}
	}
	walk(doc, RootID)
	return out
}
