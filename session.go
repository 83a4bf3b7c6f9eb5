package jsonedit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// Session owns one editable document together with its text form, undo
// history, selection, cut-set and clipboard. Every command runs under a
// single lock, so commands apply one at a time and no partially applied
// document is ever observable. Paste waits for the clipboard without
// holding the lock and applies against whatever document is current once
// the text arrives.
type Session struct {
	mu        sync.Mutex
	doc       Value
	text      []byte
	textErr   error
	history   *History
	selection *Selection
	cutSet    []NodeID
	clipboard Clipboard
	opts      SessionOptions
	log       *slog.Logger
}

// NewSession starts a session on initial, which must be an object or an
// array. opts may be nil.
func NewSession(initial Value, opts *SessionOptions) (*Session, error) {
	if err := checkValue(initial); err != nil {
		return nil, err
	}
	if !initial.IsContainer() {
		return nil, ErrRootReplacementUnsupported
	}
	o := DefaultSessionOptions
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()
	s := &Session{
		history:   NewHistory(o.HistoryLimit),
		selection: NewSelection(),
		clipboard: o.Clipboard,
		opts:      o,
		log:       o.Logger,
	}
	s.publish(initial.Clone())
	return s, nil
}

// NewSessionFromText starts a session on the document parsed from text.
func NewSessionFromText(text []byte, opts *SessionOptions) (*Session, error) {
	doc, err := ParseText(text)
	if err != nil {
		return nil, err
	}
	return NewSession(doc, opts)
}

//------------------------------------------------------------------------------
// QUERIES
//------------------------------------------------------------------------------

// Document returns a copy of the current document.
func (s *Session) Document() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Text returns the text pane contents. While TextError is non-nil this is
// the invalid text the user typed, not the document's serialization.
func (s *Session) Text() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.text...)
}

// TextError returns the parse error of the current text, if any.
func (s *Session) TextError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textErr
}

// Tree returns the node descriptors of the current document.
func (s *Session) Tree() Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildTree(s.doc.Clone())
}

// Flatten returns the current flattened order.
func (s *Session) Flatten() []NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FlattenDocument(s.doc)
}

// Resolve returns a copy of the value at id in the current document.
func (s *Session) Resolve(id NodeID) (Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := Resolve(s.doc, id)
	if err != nil {
		return Value{}, err
	}
	return v.Clone(), nil
}

// Selected returns the selected ids in flattened order.
func (s *Session) Selected() []NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Ordered(FlattenDocument(s.doc))
}

// LastSelected returns the selection anchor, which is also the paste target.
func (s *Session) LastSelected() (NodeID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Last()
}

// CutSet returns the nodes pending removal by the next paste.
func (s *Session) CutSet() []NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NodeID(nil), s.cutSet...)
}

// CanUndo reports whether Undo would change the document.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// LocateText returns the byte range of id's value inside the text pane,
// for highlighting the node selected in the tree. It reports false while
// the text does not parse or when id is not present.
func (s *Session) LocateText(id NodeID) (start, end int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.textErr != nil {
		return 0, 0, false
	}
	segs, err := Segments(id)
	if err != nil {
		return 0, 0, false
	}
	if len(segs) == 0 {
		return 0, len(s.text), true
	}
	r := gjson.ParseBytes(s.text)
	for _, seg := range segs {
		r = childResult(r, seg)
		if !r.Exists() {
			return 0, 0, false
		}
	}
	if r.Index == 0 {
		return 0, 0, false
	}
	return r.Index, r.Index + len(r.Raw), true
}

// childResult steps from r to its member or item named seg. A gjson path
// cannot name the empty key, so that one is found by scanning the members.
func childResult(r gjson.Result, seg string) gjson.Result {
	if seg != "" {
		return r.Get(queryPath([]string{seg}, nil))
	}
	var found gjson.Result
	if r.IsObject() {
		r.ForEach(func(key, value gjson.Result) bool {
			if key.Str == "" {
				found = value
				return false
			}
			return true
		})
	}
	return found
}

//------------------------------------------------------------------------------
// SELECTION
//------------------------------------------------------------------------------

// Click applies a tree click on id.
func (s *Session) Click(id NodeID, mods Modifiers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Click(id, mods, FlattenDocument(s.doc))
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

//------------------------------------------------------------------------------
// MUTATIONS
//------------------------------------------------------------------------------

// SetValue replaces the value at id.
func (s *Session) SetValue(id NodeID, value Value) error {
	return s.commit("set", id, func(doc Value) (Value, error) {
		return SetValue(doc, id, value)
	})
}

// RenameKey renames the object member at id, keeping its position.
func (s *Session) RenameKey(id NodeID, newKey string) error {
	return s.commit("rename", id, func(doc Value) (Value, error) {
		return RenameKey(doc, id, newKey)
	})
}

// Retype converts the value at id to a default instance of t.
func (s *Session) Retype(id NodeID, t ValueType) error {
	return s.commit("retype", id, func(doc Value) (Value, error) {
		return Retype(doc, id, t)
	})
}

// Delete removes the node at id.
func (s *Session) Delete(id NodeID) error {
	return s.commit("delete", id, func(doc Value) (Value, error) {
		return DeleteNode(doc, id)
	})
}

// DeleteSelection removes every selected node as one undo step and clears
// the selection.
func (s *Session) DeleteSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.selection.Ordered(FlattenDocument(s.doc))
	if len(ids) == 0 {
		return nil
	}
	err := s.commitLocked("delete-selection", ids[0], func(doc Value) (Value, error) {
		return DeleteNodes(doc, ids)
	})
	if err == nil {
		s.selection.Clear()
	}
	return err
}

// Insert adds value under parentID. key is required for objects and
// ignored for arrays.
func (s *Session) Insert(parentID NodeID, key string, value Value) error {
	return s.commit("insert", parentID, func(doc Value) (Value, error) {
		return InsertChild(doc, parentID, key, value)
	})
}

// Add is Insert fed by an edit form: text is validated and coerced to t.
func (s *Session) Add(parentID NodeID, key string, t ValueType, text string) error {
	value, err := CoerceLeafInput(text, t)
	if err != nil {
		return err
	}
	return s.Insert(parentID, key, value)
}

// Edit applies an edit form to the node at id in one undo step: the key is
// renamed in place when it changed and the parent is an object, then the
// value is replaced by text coerced to t. A container edited without
// changing its type keeps its children.
func (s *Session) Edit(id NodeID, key string, t ValueType, text string) error {
	value, err := CoerceLeafInput(text, t)
	if err != nil {
		return err
	}
	return s.commit("edit", id, func(doc Value) (Value, error) {
		cur, err := Resolve(doc, id)
		if err != nil {
			return Value{}, err
		}
		target := id
		if parentID, ok := ParentID(id); ok && key != "" && key != id.Name() {
			parent, err := Resolve(doc, parentID)
			if err != nil {
				return Value{}, err
			}
			if parent.Type == TypeObject {
				doc, err = RenameKey(doc, id, key)
				if err != nil {
					return Value{}, err
				}
				target = ChildID(parentID, key)
			}
		}
		if value.IsContainer() && cur.Type == value.Type {
			return doc, nil
		}
		return SetValue(doc, target, value)
	})
}

// Reorder moves sourceID to targetID's position among their siblings.
func (s *Session) Reorder(sourceID, targetID NodeID) error {
	return s.commit("reorder", sourceID, func(doc Value) (Value, error) {
		return Reorder(doc, sourceID, targetID)
	})
}

// SetText replaces the text pane contents. Valid text becomes the new
// document as one undo step. Invalid text is kept for further editing and
// returned as a *ParseError while the last valid document stays in place.
// Text holding a bare primitive is kept the same way and rejected with
// ErrRootReplacementUnsupported.
func (s *Session) SetText(text []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = append([]byte(nil), text...)
	doc, err := ParseText(text)
	if err == nil && !doc.IsContainer() {
		err = ErrRootReplacementUnsupported
	}
	if err != nil {
		s.textErr = err
		s.log.Debug("text out of sync", "error", err)
		return err
	}
	s.textErr = nil
	if doc.Equal(s.doc) {
		return nil
	}
	s.history.Record(s.doc)
	s.doc = doc
	s.cutSet = nil
	s.selection.Prune(FlattenDocument(doc))
	s.log.Debug("command applied", "op", "text")
	return nil
}

// FormatText re-indents the text pane. The document is not touched.
func (s *Session) FormatText() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := FormatText(s.text, s.opts.Indent)
	if err != nil {
		return err
	}
	s.text = out
	return nil
}

// Undo restores the previous document. It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.history.Undo(s.doc)
	if !ok {
		return false
	}
	s.publish(prev)
	s.log.Debug("command applied", "op", "undo")
	return true
}

// Redo re-applies the last undone document. It reports false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.history.Redo(s.doc)
	if !ok {
		return false
	}
	s.publish(next)
	s.log.Debug("command applied", "op", "redo")
	return true
}

//------------------------------------------------------------------------------
// CLIPBOARD
//------------------------------------------------------------------------------

// Copy writes the selected nodes to the clipboard and drops any pending cut.
func (s *Session) Copy(ctx context.Context) error {
	return s.copySelection(ctx, "copy", false)
}

// Cut copies the selection and marks it for removal by the next paste.
func (s *Session) Cut(ctx context.Context) error {
	return s.copySelection(ctx, "cut", true)
}

// copySelection takes the payload and the new cut-set from one snapshot of
// the document. A failed clipboard write withdraws that cut-set again.
func (s *Session) copySelection(ctx context.Context, op string, cut bool) error {
	s.mu.Lock()
	flat := FlattenDocument(s.doc)
	ids := s.selection.Ordered(flat)
	payload, err := CopyPayload(s.doc, ids, flat)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.cutSet = nil
	if cut {
		s.cutSet = ids
	}
	s.mu.Unlock()

	if err := s.clipboard.WriteText(ctx, string(payload)); err != nil {
		s.log.Warn("clipboard write failed", "op", op, "error", err)
		if cut {
			s.mu.Lock()
			if slices.Equal(s.cutSet, ids) {
				s.cutSet = nil
			}
			s.mu.Unlock()
		}
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	s.log.Debug("clipboard written", "op", op, "nodes", len(ids))
	return nil
}

// Paste reads the clipboard and inserts its JSON at the selection anchor,
// then removes any pending cut. Without an anchor it does nothing. A
// failed read or invalid JSON aborts the paste and leaves everything as it
// was.
func (s *Session) Paste(ctx context.Context) error {
	text, err := s.clipboard.ReadText(ctx)
	if err != nil {
		s.log.Warn("clipboard read failed", "error", err)
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.selection.Last()
	if !ok {
		return nil
	}
	hadCut := len(s.cutSet) > 0
	req := PasteRequest{
		Target: target,
		Text:   []byte(text),
		CutSet: s.cutSet,
		NewKey: s.newKey(),
	}
	err = s.commitLocked("paste", target, func(doc Value) (Value, error) {
		return Paste(doc, req)
	})
	if err != nil {
		return err
	}
	// A paste that puts a cut node back where it was leaves the document
	// unchanged, but the cut is still spent.
	s.cutSet = nil
	if hadCut {
		s.selection.Clear()
	}
	return nil
}

func (s *Session) newKey() func(i int) string {
	stamp := strconv.FormatInt(s.opts.Now().UnixMilli(), 10)
	return func(i int) string {
		return s.opts.PasteKeyPrefix + "_" + stamp + "_" + strconv.Itoa(i)
	}
}

//------------------------------------------------------------------------------
// KEYBOARD
//------------------------------------------------------------------------------

// Shortcut is a key press routed to the session.
type Shortcut struct {
	// Key is "Delete" or a single letter.
	Key  string
	Ctrl bool
	Meta bool

	// InTextField suppresses every shortcut while focus is in a text input.
	InTextField bool
}

// HandleShortcut runs the command bound to sc: Delete removes the
// selection, Ctrl/Cmd with C, X, V, Z or Y copy, cut, paste, undo or redo.
// It reports whether sc was bound.
func (s *Session) HandleShortcut(ctx context.Context, sc Shortcut) (bool, error) {
	if sc.InTextField {
		return false, nil
	}
	if sc.Key == "Delete" {
		return true, s.DeleteSelection()
	}
	if !sc.Ctrl && !sc.Meta {
		return false, nil
	}
	switch strings.ToLower(sc.Key) {
	case "c":
		return true, s.Copy(ctx)
	case "x":
		return true, s.Cut(ctx)
	case "v":
		return true, s.Paste(ctx)
	case "z":
		s.Undo()
		return true, nil
	case "y":
		s.Redo()
		return true, nil
	}
	return false, nil
}

//------------------------------------------------------------------------------
// COMMIT
//------------------------------------------------------------------------------

func (s *Session) commit(op string, id NodeID, fn func(doc Value) (Value, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(op, id, fn)
}

// commitLocked records the current document before publishing the result
// of fn. Errors and no-op results leave the session untouched.
func (s *Session) commitLocked(op string, id NodeID, fn func(doc Value) (Value, error)) error {
	next, err := fn(s.doc)
	if err != nil {
		s.log.Debug("command rejected", "op", op, "node", string(id), "error", err)
		return err
	}
	if next.Equal(s.doc) {
		return nil
	}
	s.history.Record(s.doc)
	s.publish(next)
	undo, _ := s.history.Depth()
	s.log.Debug("command applied", "op", op, "node", string(id), "history", undo)
	return nil
}

// publish makes doc current and re-derives everything that depends on it.
// Pending cuts are dropped since their ids may now address other nodes.
func (s *Session) publish(doc Value) {
	s.doc = doc
	s.text = Serialize(doc, s.opts.Indent)
	s.textErr = nil
	s.cutSet = nil
	s.selection.Prune(FlattenDocument(doc))
}
