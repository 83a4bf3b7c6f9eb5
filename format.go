package jsonedit

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// DefaultIndent is the indentation of the canonical text form.
const DefaultIndent = "  "

// Serialize renders doc in its canonical text form: JSON indented with
// indent (two spaces when empty), keys in document order.
func Serialize(doc Value, indent string) []byte {
	if indent == "" {
		indent = DefaultIndent
	}
	return indentJSON(appendCompact(nil, doc), indent)
}

// Valid reports whether text is a single well-formed JSON value.
func Valid(text []byte) bool {
	return gjson.ValidBytes(text)
}

// FormatText re-indents hand-edited text without touching the document.
// Key order is kept.
func FormatText(text []byte, indent string) ([]byte, error) {
	if !Valid(text) {
		_, err := ParseText(text)
		if err == nil {
			err = &ParseError{Message: "invalid json"}
		}
		return nil, err
	}
	if indent == "" {
		indent = DefaultIndent
	}
	// Width 0 keeps every array item on its own line, as Serialize does.
	out := pretty.PrettyOptions(text, &pretty.Options{
		Width:  0,
		Indent: indent,
	})
	// pretty terminates its output with a newline; the text pane does not.
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}

//------------------------------------------------------------------------------
// COMPACT ENCODING
//------------------------------------------------------------------------------

func appendCompact(b []byte, v Value) []byte {
	switch v.Type {
	case TypeString:
		return appendString(b, v.Str)
	case TypeNumber:
		return appendNumber(b, v.Num)
	case TypeBoolean:
		return strconv.AppendBool(b, v.Boolean)
	case TypeObject:
		b = append(b, '{')
		first := true
		for _, m := range v.members {
			if m.Value.Type == typeTombstone {
				continue
			}
			if !first {
				b = append(b, ',')
			}
			first = false
			b = appendString(b, m.Key)
			b = append(b, ':')
			b = appendCompact(b, m.Value)
		}
		return append(b, '}')
	case TypeArray:
		b = append(b, '[')
		first := true
		for _, item := range v.items {
			if item.Type == typeTombstone {
				continue
			}
			if !first {
				b = append(b, ',')
			}
			first = false
			b = appendCompact(b, item)
		}
		return append(b, ']')
	}
	return append(b, "null"...)
}

// appendNumber formats like ECMAScript Number#toString for finite values:
// plain notation inside [1e-6, 1e21), exponent notation outside.
func appendNumber(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return append(b, '0')
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

const hexDigits = "0123456789abcdef"

func appendString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b = append(b, '\\', c)
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			case '\b':
				b = append(b, '\\', 'b')
			case '\f':
				b = append(b, '\\', 'f')
			default:
				if c < 0x20 {
					b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				} else {
					b = append(b, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, "\ufffd"...)
		} else {
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return append(b, '"')
}

//------------------------------------------------------------------------------
// INDENTATION
//------------------------------------------------------------------------------

// indentJSON expands compact JSON into one member per line.
func indentJSON(data []byte, indent string) []byte {
	result := make([]byte, 0, len(data)*2)
	var depth int
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		char := data[i]

		if inString {
			result = processStringChar(result, char, &escaped, &inString)
			continue
		}

		switch char {
		case '"':
			result = append(result, char)
			inString = true

		case '{', '[':
			result = processOpenBracket(result, data, i, char, &depth, indent)

		case '}', ']':
			result = processCloseBracket(result, char, &depth, indent)

		case ',':
			result = processComma(result, depth, indent)

		case ':':
			result = append(result, char, ' ')

		case ' ', '\t', '\n', '\r':
			continue

		default:
			result = append(result, char)
		}
	}

	return result
}

// processStringChar handles characters within JSON strings
func processStringChar(result []byte, char byte, escaped *bool, inString *bool) []byte {
	result = append(result, char)
	if *escaped {
		*escaped = false
	} else if char == '\\' {
		*escaped = true
	} else if char == '"' {
		*inString = false
	}
	return result
}

// processOpenBracket handles opening brackets ({ and [)
func processOpenBracket(result []byte, data []byte, i int, char byte, depth *int, indent string) []byte {
	result = append(result, char)
	*depth++

	// empty containers stay on one line
	if i+1 < len(data) && !isNextCharClosing(data, i+1) {
		result = append(result, '\n')
		result = appendIndent(result, indent, *depth)
	}

	return result
}

// processCloseBracket handles closing brackets (} and ])
func processCloseBracket(result []byte, char byte, depth *int, indent string) []byte {
	*depth--

	if isLastCharOpenBracket(result) {
		return append(result, char)
	}
	result = append(result, '\n')
	result = appendIndent(result, indent, *depth)
	return append(result, char)
}

// processComma handles comma characters
func processComma(result []byte, depth int, indent string) []byte {
	result = append(result, ',', '\n')
	return appendIndent(result, indent, depth)
}

func isNextCharClosing(data []byte, start int) bool {
	for i := start; i < len(data); i++ {
		char := data[i]
		if char == ' ' || char == '\t' || char == '\n' || char == '\r' {
			continue
		}
		return char == '}' || char == ']'
	}
	return false
}

func appendIndent(data []byte, indent string, depth int) []byte {
	for i := 0; i < depth; i++ {
		data = append(data, indent...)
	}
	return data
}

// isLastCharOpenBracket checks if the last non-whitespace character in result is { or [
func isLastCharOpenBracket(data []byte) bool {
	for i := len(data) - 1; i >= 0; i-- {
		c := data[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return c == '{' || c == '['
	}
	return false
}
