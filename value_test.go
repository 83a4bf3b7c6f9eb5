package jsonedit

import (
	"errors"
	"reflect"
	"testing"
)

// TestValueConstructors tests the typed constructors
func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want ValueType
		json string
	}{
		{"null", Null(), TypeNull, `null`},
		{"string", String("hi"), TypeString, `"hi"`},
		{"number", Number(3.5), TypeNumber, `3.5`},
		{"bool", Bool(true), TypeBoolean, `true`},
		{"object", Object(Member{"a", Number(1)}), TypeObject, `{"a":1}`},
		{"array", Array(Number(1), Null()), TypeArray, `[1,null]`},
		{"empty object", Object(), TypeObject, `{}`},
		{"empty array", Array(), TypeArray, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Type != tt.want {
				t.Errorf("Expected type %s, got %s", tt.want, tt.v.Type)
			}
			if got := tt.v.String(); got != tt.json {
				t.Errorf("Expected %s, got %s", tt.json, got)
			}
		})
	}
}

// TestObjectKeepsOrder tests that members stay in insertion order and
// repeated keys keep their first position
func TestObjectKeepsOrder(t *testing.T) {
	v := Object(
		Member{"z", Number(1)},
		Member{"a", Number(2)},
		Member{"z", Number(3)},
	)
	if got := v.Keys(); !reflect.DeepEqual(got, []string{"z", "a"}) {
		t.Errorf("Expected [z a], got %v", got)
	}
	if z, _ := v.Get("z"); z.Num != 3 {
		t.Errorf("Expected z=3, got %v", z)
	}
}

// TestValueEqual tests deep equality with significant key order
func TestValueEqual(t *testing.T) {
	a := MustParse(`{"a":1,"b":[true,null,"x"]}`)
	b := MustParse(`{"a":1,"b":[true,null,"x"]}`)
	c := MustParse(`{"b":[true,null,"x"],"a":1}`)

	if !a.Equal(b) {
		t.Error("Expected identical documents to be equal")
	}
	if a.Equal(c) {
		t.Error("Expected documents with different key order to differ")
	}
	if Number(1).Equal(String("1")) {
		t.Error("Expected number and string to differ")
	}
}

// TestValueCloneIsIndependent tests that clones share no containers
func TestValueCloneIsIndependent(t *testing.T) {
	orig := MustParse(`{"list":[1,2],"obj":{"k":"v"}}`)
	clone := orig.Clone()

	list := &clone.members[0].Value
	list.items[0] = Number(99)
	obj := &clone.members[1].Value
	obj.setMember("k", String("changed"))

	if got := orig.String(); got != `{"list":[1,2],"obj":{"k":"v"}}` {
		t.Errorf("Original modified through clone: %s", got)
	}
}

// TestFromAny tests conversion from decoded Go values
func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"b": []any{1, "two", nil},
		"a": true,
	})
	if err != nil {
		t.Fatalf("FromAny failed: %v", err)
	}
	// map keys are sorted
	if got := v.String(); got != `{"a":true,"b":[1,"two",null]}` {
		t.Errorf("Unexpected value: %s", got)
	}

	back := v.Interface().(map[string]any)
	if back["a"] != true {
		t.Errorf("Expected a=true after Interface, got %v", back["a"])
	}

	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

// TestParseValueType tests type name lookup
func TestParseValueType(t *testing.T) {
	for _, name := range []string{"object", "array", "string", "number", "boolean", "null"} {
		vt, err := ParseValueType(name)
		if err != nil {
			t.Errorf("ParseValueType(%q) failed: %v", name, err)
			continue
		}
		if vt.String() != name {
			t.Errorf("Expected %q, got %q", name, vt.String())
		}
	}
	if _, err := ParseValueType("integer"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

// TestNumberRejectsNonFinite tests that non-finite numbers become 0
func TestNumberRejectsNonFinite(t *testing.T) {
	inf := 1.0
	for i := 0; i < 400; i++ {
		inf *= 10
	}
	if v := Number(inf); v.Num != 0 {
		t.Errorf("Expected 0 for +Inf, got %v", v.Num)
	}
}
