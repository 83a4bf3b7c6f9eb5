// Package jsonedit provides the document mutation and history engine behind a
// two-pane JSON editor: path addressing, structural edits that preserve key
// order, snapshot undo/redo, multi-selection, clipboard cut/copy/paste and
// sibling reordering.
package jsonedit

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ValueType represents the type of a JSON value
type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeString
	TypeNumber
	TypeBoolean
	TypeObject
	TypeArray

	// typeTombstone marks a slot pending removal by sweep. It never
	// survives a public operation.
	typeTombstone ValueType = 0xff
)

var typeNames = map[ValueType]string{
	TypeNull:    "null",
	TypeString:  "string",
	TypeNumber:  "number",
	TypeBoolean: "boolean",
	TypeObject:  "object",
	TypeArray:   "array",
}

func (t ValueType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "undefined"
}

// ParseValueType maps a type name ("object", "array", "string", "number",
// "boolean", "null") to its ValueType.
func ParseValueType(name string) (ValueType, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeUndefined, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. Objects keep their members in insertion order.
// The zero Value is undefined and is never part of a document.
type Value struct {
	Type    ValueType
	Str     string
	Num     float64
	Boolean bool

	members []Member
	items   []Value
}

// Null returns the JSON null value.
func Null() Value { return Value{Type: TypeNull} }

// String returns a JSON string value.
func String(s string) Value { return Value{Type: TypeString, Str: s} }

// Number returns a JSON number value. Non-finite numbers become 0 since
// JSON cannot represent them.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return Value{Type: TypeNumber, Num: f}
}

// Bool returns a JSON boolean value.
func Bool(b bool) Value { return Value{Type: TypeBoolean, Boolean: b} }

// Object returns an object holding members in the given order. A repeated
// key overwrites the earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	v := Value{Type: TypeObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.setMember(m.Key, m.Value.Clone())
	}
	return v
}

// Array returns an array holding items in order.
func Array(items ...Value) Value {
	v := Value{Type: TypeArray, items: make([]Value, len(items))}
	for i, item := range items {
		v.items[i] = item.Clone()
	}
	return v
}

// FromAny converts a decoded Go value (as produced by encoding/json) into a
// Value. Map keys are sorted since Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{Type: TypeArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			members[i] = Member{Key: k, Value: v}
		}
		return Value{Type: TypeObject, members: members}, nil
	}
	return Value{}, fmt.Errorf("unsupported type %T", x)
}

// MustFromAny is like FromAny but panics on unsupported input.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Interface converts v back into plain Go values. Objects become
// map[string]any and therefore lose their key order.
func (v Value) Interface() any {
	switch v.Type {
	case TypeString:
		return v.Str
	case TypeNumber:
		return v.Num
	case TypeBoolean:
		return v.Boolean
	case TypeObject:
		m := make(map[string]any, len(v.members))
		for _, mem := range v.members {
			m[mem.Key] = mem.Value.Interface()
		}
		return m
	case TypeArray:
		s := make([]any, len(v.items))
		for i, item := range v.items {
			s[i] = item.Interface()
		}
		return s
	}
	return nil
}

// IsContainer reports whether v is an object or an array.
func (v Value) IsContainer() bool {
	return v.Type == TypeObject || v.Type == TypeArray
}

// Len returns the number of members or items, 0 for primitives.
func (v Value) Len() int {
	switch v.Type {
	case TypeObject:
		return len(v.members)
	case TypeArray:
		return len(v.items)
	}
	return 0
}

// Keys returns object keys in document order.
func (v Value) Keys() []string {
	if v.Type != TypeObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the object's members in document order.
func (v Value) Members() []Member {
	if v.Type != TypeObject {
		return nil
	}
	out := make([]Member, len(v.members))
	for i, m := range v.members {
		out[i] = Member{Key: m.Key, Value: m.Value.Clone()}
	}
	return out
}

// Items returns a copy of the array's items.
func (v Value) Items() []Value {
	if v.Type != TypeArray {
		return nil
	}
	out := make([]Value, len(v.items))
	for i, item := range v.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns the member stored under key.
func (v Value) Get(key string) (Value, bool) {
	if i := v.indexOfKey(key); i >= 0 {
		return v.members[i].Value, true
	}
	return Value{}, false
}

// Index returns the array item at i.
func (v Value) Index(i int) (Value, bool) {
	if v.Type != TypeArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Clone returns a deep copy of v sharing no slices with it.
func (v Value) Clone() Value {
	out := v
	switch v.Type {
	case TypeObject:
		out.members = make([]Member, len(v.members))
		for i, m := range v.members {
			out.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	case TypeArray:
		out.items = make([]Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
	default:
		out.members = nil
		out.items = nil
	}
	return out
}

// Equal reports deep equality. Object member order is significant.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeString:
		return v.Str == o.Str
	case TypeNumber:
		return v.Num == o.Num
	case TypeBoolean:
		return v.Boolean == o.Boolean
	case TypeObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	case TypeArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// String renders v as compact JSON.
func (v Value) String() string {
	return string(appendCompact(nil, v))
}

func (v Value) indexOfKey(key string) int {
	if v.Type != TypeObject {
		return -1
	}
	for i, m := range v.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// setMember assigns key in place, appending when the key is new.
func (v *Value) setMember(key string, val Value) {
	if i := v.indexOfKey(key); i >= 0 {
		v.members[i].Value = val
		return
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

func (v *Value) removeMember(i int) {
	v.members = append(v.members[:i:i], v.members[i+1:]...)
}

func (v *Value) insertItems(at int, items ...Value) {
	if at < 0 || at > len(v.items) {
		at = len(v.items)
	}
	next := make([]Value, 0, len(v.items)+len(items))
	next = append(next, v.items[:at]...)
	next = append(next, items...)
	next = append(next, v.items[at:]...)
	v.items = next
}

func (v *Value) removeItem(i int) {
	v.items = append(v.items[:i:i], v.items[i+1:]...)
}
