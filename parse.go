package jsonedit

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// ParseText decodes text into a Value, keeping object keys in the order
// they appear. A repeated key keeps its first position and its last value.
func ParseText(text []byte) (Value, error) {
	// The parser is lenient about escapes and number syntax.
	if err := fastjson.ValidateBytes(text); err != nil {
		return Value{}, newParseError(text, err)
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	fv, err := p.ParseBytes(text)
	if err != nil {
		return Value{}, newParseError(text, err)
	}
	return fromFast(fv), nil
}

// MustParse is like ParseText but panics on invalid input. Intended for
// literals in tests and initial documents.
func MustParse(text string) Value {
	v, err := ParseText([]byte(text))
	if err != nil {
		panic(err)
	}
	return v
}

func fromFast(fv *fastjson.Value) Value {
	switch fv.Type() {
	case fastjson.TypeObject:
		o, _ := fv.Object()
		out := Value{Type: TypeObject, members: make([]Member, 0, o.Len())}
		o.Visit(func(key []byte, v *fastjson.Value) {
			out.setMember(string(key), fromFast(v))
		})
		return out
	case fastjson.TypeArray:
		arr, _ := fv.Array()
		out := Value{Type: TypeArray, items: make([]Value, len(arr))}
		for i, item := range arr {
			out.items[i] = fromFast(item)
		}
		return out
	case fastjson.TypeString:
		return String(string(fv.GetStringBytes()))
	case fastjson.TypeNumber:
		return Number(fv.GetFloat64())
	case fastjson.TypeTrue:
		return Bool(true)
	case fastjson.TypeFalse:
		return Bool(false)
	}
	return Null()
}

func newParseError(text []byte, err error) *ParseError {
	pe := &ParseError{Message: err.Error()}
	if len(text) == 0 {
		pe.Message = "empty input"
		return pe
	}
	// fastjson reports the unparsed tail but not a position; the standard
	// decoder's syntax error carries the byte offset the text pane needs.
	var syn *json.SyntaxError
	if errors.As(json.Unmarshal(text, new(json.RawMessage)), &syn) {
		pe.Offset = int(syn.Offset)
	}
	return pe
}
