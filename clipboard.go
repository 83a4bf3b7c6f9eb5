package jsonedit

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/tidwall/sjson"
)

// Clipboard is the external system clipboard: a plain-text channel that
// carries JSON with no framing. Reads may block; implementations must
// honor ctx.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// MemoryClipboard is an in-process Clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadText returns the last written text.
func (c *MemoryClipboard) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteText replaces the clipboard contents.
func (c *MemoryClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// CopyPayload serializes the selected nodes for the clipboard. Selected ids
// are taken in flat order, ids missing from flat are ignored. When the
// first node's parent is an array the payload is an array of the values;
// otherwise it is an object mapping each node's own key to its value, with
// the root contributing under "root".
func CopyPayload(doc Value, selected []NodeID, flat []NodeID) ([]byte, error) {
	set := make(map[NodeID]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}
	ordered := orderBy(set, flat)
	if len(ordered) == 0 {
		return nil, ErrNothingSelected
	}

	asArray := false
	if parentID, ok := ParentID(ordered[0]); ok {
		parent, err := Resolve(doc, parentID)
		if err != nil {
			return nil, err
		}
		asArray = parent.Type == TypeArray
	}

	if asArray {
		buf := []byte("[]")
		for _, id := range ordered {
			v, err := Resolve(doc, id)
			if err != nil {
				return nil, err
			}
			buf, err = sjson.SetRawBytes(buf, "-1", appendCompact(nil, v))
			if err != nil {
				return nil, fmt.Errorf("copy %s: %w", id, err)
			}
		}
		return indentJSON(buf, DefaultIndent), nil
	}

	// Keys go through the value model: a query path cannot name "".
	out := Value{Type: TypeObject, members: make([]Member, 0, len(ordered))}
	for _, id := range ordered {
		v, err := Resolve(doc, id)
		if err != nil {
			return nil, err
		}
		out.setMember(id.Name(), v.Clone())
	}
	return Serialize(out, DefaultIndent), nil
}

// PasteRequest describes one paste.
type PasteRequest struct {
	// Target is the anchor of the selection. An empty Target makes the
	// paste a no-op.
	Target NodeID

	// Text is the clipboard contents.
	Text []byte

	// CutSet lists nodes to remove once the payload is inserted.
	CutSet []NodeID

	// NewKey names the i-th bare value pasted into an object, since a bare
	// value carries no key of its own. Defaults to "pasted_<i>".
	NewKey func(i int) string
}

// Paste inserts the clipboard payload relative to req.Target.
//
// A container target receives the payload directly. A leaf target hands
// it to its parent: in an array the items land right after the target, in
// an object they are merged. Arrays splice the payload in (a non-array
// payload counts as one item). Objects merge an object payload member by
// member, renaming colliding keys to "<key>_copy1", "<key>_copy2", ...;
// other payloads are stored under keys from NewKey.
//
// Nodes in CutSet are removed after insertion. Pasting into a node that is
// itself pending removal fails and leaves the document unchanged.
func Paste(doc Value, req PasteRequest) (Value, error) {
	payload, err := ParseText(req.Text)
	if err != nil {
		return Value{}, err
	}
	if req.Target == "" {
		return doc, nil
	}
	newKey := req.NewKey
	if newKey == nil {
		newKey = func(i int) string { return "pasted_" + strconv.Itoa(i) }
	}

	target, err := Resolve(doc, req.Target)
	if err != nil {
		return Value{}, err
	}
	containerID := req.Target
	insertAt := -1
	if !target.IsContainer() {
		parentID, ok := ParentID(req.Target)
		if !ok {
			return Value{}, fmt.Errorf("paste beside root: %w", ErrUnsupportedOperation)
		}
		containerID = parentID
		parent, err := Resolve(doc, parentID)
		if err != nil {
			return Value{}, err
		}
		if parent.Type == TypeArray {
			i, _ := arrayIndex(req.Target.Name(), len(parent.items))
			insertAt = i + 1
		}
	}

	next := doc.Clone()
	// Cut nodes become tombstones first so every id keeps addressing the
	// same slot until the final sweep.
	for _, id := range req.CutSet {
		if id.IsRoot() {
			continue
		}
		if err := tombstone(&next, id); err != nil && !IsPathError(err) {
			return Value{}, err
		}
	}
	container, err := locate(&next, containerID)
	if err != nil {
		return Value{}, fmt.Errorf("paste into cut node %s: %w", containerID, ErrUnsupportedOperation)
	}

	switch container.Type {
	case TypeArray:
		items := []Value{payload}
		if payload.Type == TypeArray {
			items = payload.items
		}
		container.insertItems(insertAt, items...)
	case TypeObject:
		if payload.Type == TypeObject {
			for _, m := range payload.members {
				container.setMember(uniqueKey(*container, m.Key), m.Value)
			}
			break
		}
		items := []Value{payload}
		if payload.Type == TypeArray {
			items = payload.items
		}
		for i, item := range items {
			container.setMember(uniqueKey(*container, newKey(i)), item)
		}
	}

	sweep(&next)
	return next, nil
}

// uniqueKey returns key, or the first "<key>_copyN" not present in obj.
func uniqueKey(obj Value, key string) string {
	if obj.indexOfKey(key) < 0 {
		return key
	}
	for n := 1; ; n++ {
		candidate := key + "_copy" + strconv.Itoa(n)
		if obj.indexOfKey(candidate) < 0 {
			return candidate
		}
	}
}
