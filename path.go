package jsonedit

import (
	"strconv"
	"strings"
)

const rootSegment = "root"

// NodeID is a dot-separated path addressing one location in a document
// snapshot, always starting with the root segment: "root.settings.retryCount".
// Segments after root are object keys or array indices; literal dots and
// backslashes inside keys are escaped with a backslash.
//
// NodeIDs are not stable across structural edits to their ancestors.
// Re-resolve them from the current tree after every mutation.
type NodeID string

// RootID addresses the document itself.
const RootID NodeID = rootSegment

// IsRoot reports whether id addresses the document itself.
func (id NodeID) IsRoot() bool { return id == RootID }

// Segments returns the path segments of id after the root segment.
func Segments(id NodeID) ([]string, error) {
	parts := splitEscaped(string(id))
	if parts[0] != rootSegment || strings.HasPrefix(string(id), `\`) {
		return nil, pathErr(id, parts[0], ErrInvalidNodeID)
	}
	return parts[1:], nil
}

// ParentID returns the id of the node containing id. The root has no parent.
func ParentID(id NodeID) (NodeID, bool) {
	segs, err := Segments(id)
	if err != nil || len(segs) == 0 {
		return "", false
	}
	return BuildNodeID(segs[:len(segs)-1]...), true
}

// ChildID returns the id of the child named segment under parent.
func ChildID(parent NodeID, segment string) NodeID {
	return NodeID(string(parent) + "." + EscapePathSegment(segment))
}

// Name returns the last segment of id: the object key or array index under
// which the node is stored, or "root".
func (id NodeID) Name() string {
	segs, err := Segments(id)
	if err != nil || len(segs) == 0 {
		return rootSegment
	}
	return segs[len(segs)-1]
}

// Resolve returns the value addressed by id. It fails with a *PathError
// wrapping ErrNotFound when a segment does not exist on its container, or
// ErrTypeNotIndexable when a segment descends into a primitive or null.
func Resolve(doc Value, id NodeID) (Value, error) {
	segs, err := Segments(id)
	if err != nil {
		return Value{}, err
	}
	cur := doc
	for _, seg := range segs {
		switch cur.Type {
		case TypeObject:
			next, ok := cur.Get(seg)
			if !ok {
				return Value{}, pathErr(id, seg, ErrNotFound)
			}
			cur = next
		case TypeArray:
			i, ok := arrayIndex(seg, len(cur.items))
			if !ok {
				return Value{}, pathErr(id, seg, ErrNotFound)
			}
			cur = cur.items[i]
		default:
			return Value{}, pathErr(id, seg, ErrTypeNotIndexable)
		}
		if cur.Type == typeTombstone {
			return Value{}, pathErr(id, seg, ErrNotFound)
		}
	}
	return cur, nil
}

// locate is Resolve over a mutable document: it returns a pointer into doc.
func locate(doc *Value, id NodeID) (*Value, error) {
	segs, err := Segments(id)
	if err != nil {
		return nil, err
	}
	return locateSegments(doc, id, segs)
}

func locateSegments(doc *Value, id NodeID, segs []string) (*Value, error) {
	cur := doc
	for _, seg := range segs {
		switch cur.Type {
		case TypeObject:
			i := cur.indexOfKey(seg)
			if i < 0 {
				return nil, pathErr(id, seg, ErrNotFound)
			}
			cur = &cur.members[i].Value
		case TypeArray:
			i, ok := arrayIndex(seg, len(cur.items))
			if !ok {
				return nil, pathErr(id, seg, ErrNotFound)
			}
			cur = &cur.items[i]
		default:
			return nil, pathErr(id, seg, ErrTypeNotIndexable)
		}
		if cur.Type == typeTombstone {
			return nil, pathErr(id, seg, ErrNotFound)
		}
	}
	return cur, nil
}

// locateParent returns the container holding id together with the
// segment id is stored under. The root has no parent.
func locateParent(doc *Value, id NodeID) (*Value, string, error) {
	segs, err := Segments(id)
	if err != nil {
		return nil, "", err
	}
	if len(segs) == 0 {
		return nil, "", pathErr(id, "", ErrUnsupportedOperation)
	}
	parent, err := locateSegments(doc, id, segs[:len(segs)-1])
	if err != nil {
		return nil, "", err
	}
	last := segs[len(segs)-1]
	switch parent.Type {
	case TypeObject:
		if parent.indexOfKey(last) < 0 {
			return nil, "", pathErr(id, last, ErrNotFound)
		}
	case TypeArray:
		if _, ok := arrayIndex(last, len(parent.items)); !ok {
			return nil, "", pathErr(id, last, ErrNotFound)
		}
	default:
		return nil, "", pathErr(id, last, ErrTypeNotIndexable)
	}
	return parent, last, nil
}

// arrayIndex parses seg as a canonical, in-range array index.
func arrayIndex(seg string, n int) (int, bool) {
	if !isNumeric(seg) || (len(seg) > 1 && seg[0] == '0') {
		return 0, false
	}
	i, err := strconv.Atoi(seg)
	if err != nil || i >= n {
		return 0, false
	}
	return i, true
}
