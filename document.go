package jsonedit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The operations in this file take the current document and return a new
// one. The input is never modified and the result shares no containers
// with it, so snapshots held by History stay intact.

// SetValue replaces the value at id. The root may only be replaced by an
// object or array.
func SetValue(doc Value, id NodeID, value Value) (Value, error) {
	if err := checkValue(value); err != nil {
		return Value{}, err
	}
	if id.IsRoot() {
		if !value.IsContainer() {
			return Value{}, ErrRootReplacementUnsupported
		}
		return value.Clone(), nil
	}
	next := doc.Clone()
	target, err := locate(&next, id)
	if err != nil {
		return Value{}, err
	}
	*target = value.Clone()
	return next, nil
}

// RenameKey renames the object member at id to newKey, keeping its
// position among its siblings. Renaming to an empty key or to the current
// key is a no-op; renaming onto an existing sibling fails with
// ErrKeyCollision and leaves the document unchanged.
func RenameKey(doc Value, id NodeID, newKey string) (Value, error) {
	if id.IsRoot() {
		return Value{}, fmt.Errorf("rename root: %w", ErrUnsupportedOperation)
	}
	next := doc.Clone()
	parent, oldKey, err := locateParent(&next, id)
	if err != nil {
		return Value{}, err
	}
	if parent.Type != TypeObject {
		return Value{}, fmt.Errorf("rename array item %s: %w", id, ErrUnsupportedOperation)
	}
	if newKey == "" || newKey == oldKey {
		return doc, nil
	}
	if parent.indexOfKey(newKey) >= 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrKeyCollision, newKey)
	}

	rebuilt := make([]Member, 0, len(parent.members))
	for _, m := range parent.members {
		if m.Key == oldKey {
			m.Key = newKey
		}
		rebuilt = append(rebuilt, m)
	}
	parent.members = rebuilt
	return next, nil
}

// Retype converts the value at id into newType:
//
//	string  -> the value's string form
//	number  -> the value's numeric form, 0 when not a finite number
//	boolean -> the value's truthiness
//	null    -> null
//	object  -> {}
//	array   -> []
//
// Retyping the root, or retyping a node to the type it already has, is a
// no-op.
func Retype(doc Value, id NodeID, newType ValueType) (Value, error) {
	if _, ok := typeNames[newType]; !ok {
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, newType)
	}
	if id.IsRoot() {
		return doc, nil
	}
	cur, err := Resolve(doc, id)
	if err != nil {
		return Value{}, err
	}
	if cur.Type == newType {
		return doc, nil
	}
	return SetValue(doc, id, convert(cur, newType))
}

func convert(v Value, t ValueType) Value {
	switch t {
	case TypeString:
		return String(stringForm(v))
	case TypeNumber:
		return Number(numericForm(v))
	case TypeBoolean:
		return Bool(truthy(v))
	case TypeObject:
		return Object()
	case TypeArray:
		return Array()
	}
	return Null()
}

// DeleteNode removes the node at id from its parent. Array items after it
// shift down. Deleting the root is a no-op.
func DeleteNode(doc Value, id NodeID) (Value, error) {
	if id.IsRoot() {
		return doc, nil
	}
	next := doc.Clone()
	parent, key, err := locateParent(&next, id)
	if err != nil {
		return Value{}, err
	}
	switch parent.Type {
	case TypeArray:
		i, _ := arrayIndex(key, len(parent.items))
		parent.removeItem(i)
	case TypeObject:
		parent.removeMember(parent.indexOfKey(key))
	}
	return next, nil
}

// DeleteNodes removes every node in ids in one step. Ids are resolved
// against doc as given, so deleting root.0 and root.1 together removes the
// first two items. The root and ids that no longer resolve are skipped.
func DeleteNodes(doc Value, ids []NodeID) (Value, error) {
	next := doc.Clone()
	removed := 0
	for _, id := range ids {
		if id.IsRoot() {
			continue
		}
		if err := tombstone(&next, id); err != nil {
			if IsPathError(err) {
				continue
			}
			return Value{}, err
		}
		removed++
	}
	if removed == 0 {
		return doc, nil
	}
	sweep(&next)
	return next, nil
}

// InsertChild adds value under the container at parentID. Arrays get the
// value appended and ignore key. Objects require a non-empty key and
// overwrite an existing member with that key in place.
func InsertChild(doc Value, parentID NodeID, key string, value Value) (Value, error) {
	if err := checkValue(value); err != nil {
		return Value{}, err
	}
	next := doc.Clone()
	parent, err := locate(&next, parentID)
	if err != nil {
		return Value{}, err
	}
	switch parent.Type {
	case TypeArray:
		parent.items = append(parent.items, value.Clone())
	case TypeObject:
		if key == "" {
			return Value{}, &ValidationError{Type: value.Type, Err: ErrKeyRequired}
		}
		parent.setMember(key, value.Clone())
	default:
		return Value{}, pathErr(parentID, "", ErrTypeNotIndexable)
	}
	return next, nil
}

// ValidateLeafInput reports whether text is acceptable input for a leaf of
// type t. Numbers must parse to a finite number and booleans must be
// exactly "true" or "false"; everything else is accepted as-is.
func ValidateLeafInput(text string, t ValueType) bool {
	switch t {
	case TypeNumber:
		_, ok := parseNumber(text)
		return ok
	case TypeBoolean:
		return text == "true" || text == "false"
	}
	return true
}

// CoerceLeafInput builds the value an edit form produces for text typed as
// t. Containers and null ignore text.
func CoerceLeafInput(text string, t ValueType) (Value, error) {
	if !ValidateLeafInput(text, t) {
		return Value{}, &ValidationError{Type: t, Input: text, Err: ErrInvalidLeaf}
	}
	switch t {
	case TypeString:
		return String(text), nil
	case TypeNumber:
		f, _ := parseNumber(text)
		return Number(f), nil
	case TypeBoolean:
		return Bool(text == "true"), nil
	case TypeNull:
		return Null(), nil
	case TypeObject:
		return Object(), nil
	case TypeArray:
		return Array(), nil
	}
	return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

func checkValue(v Value) error {
	if _, ok := typeNames[v.Type]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownType, v.Type)
	}
	return nil
}

//------------------------------------------------------------------------------
// TOMBSTONES
//------------------------------------------------------------------------------

// tombstone marks the slot at id for removal without shifting siblings, so
// other ids resolved against the same snapshot stay valid until sweep.
func tombstone(doc *Value, id NodeID) error {
	target, err := locate(doc, id)
	if err != nil {
		return err
	}
	*target = Value{Type: typeTombstone}
	return nil
}

// sweep drops tombstoned slots at every level, keeping surviving order.
func sweep(v *Value) {
	switch v.Type {
	case TypeArray:
		kept := v.items[:0]
		for _, item := range v.items {
			if item.Type == typeTombstone {
				continue
			}
			sweep(&item)
			kept = append(kept, item)
		}
		v.items = kept
	case TypeObject:
		kept := v.members[:0]
		for _, m := range v.members {
			if m.Value.Type == typeTombstone {
				continue
			}
			sweep(&m.Value)
			kept = append(kept, m)
		}
		v.members = kept
	}
}

//------------------------------------------------------------------------------
// COERCION
//------------------------------------------------------------------------------

// stringForm is the ECMAScript String(value) of v.
func stringForm(v Value) string {
	switch v.Type {
	case TypeString:
		return v.Str
	case TypeNumber:
		return string(appendNumber(nil, v.Num))
	case TypeBoolean:
		return strconv.FormatBool(v.Boolean)
	case TypeObject:
		return "[object Object]"
	case TypeArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			if item.Type != TypeNull {
				parts[i] = stringForm(item)
			}
		}
		return strings.Join(parts, ",")
	}
	return "null"
}

// numericForm is the ECMAScript Number(value) of v with non-finite
// results replaced by 0.
func numericForm(v Value) float64 {
	switch v.Type {
	case TypeNumber:
		return v.Num
	case TypeBoolean:
		if v.Boolean {
			return 1
		}
		return 0
	case TypeString:
		f, _ := parseNumber(v.Str)
		return f
	case TypeArray:
		f, _ := parseNumber(stringForm(v))
		return f
	}
	return 0
}

func truthy(v Value) bool {
	switch v.Type {
	case TypeString:
		return v.Str != ""
	case TypeNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case TypeBoolean:
		return v.Boolean
	case TypeObject, TypeArray:
		return true
	}
	return false
}

// parseNumber reads text the way a numeric form field does: surrounding
// whitespace is ignored, 0x/0o/0b integer prefixes are honored, and
// anything that is not a finite number is rejected.
func parseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.ContainsAny(s, "_pPxXiInN") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
