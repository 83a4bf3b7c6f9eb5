package jsonedit

import "strings"

// EscapePathSegment escapes characters that would otherwise split a NodeID
// segment, so object keys containing dots address a single node.
// Example: EscapePathSegment("a.b") -> `a\.b`.
func EscapePathSegment(seg string) string {
	if !strings.ContainsAny(seg, `.\`) {
		return seg
	}

	var b strings.Builder
	b.Grow(len(seg) * 2)
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c == '.' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// BuildNodeID joins literal segments under the root segment after escaping
// each one. Example: BuildNodeID("settings", "retry.count") -> `root.settings.retry\.count`.
func BuildNodeID(segments ...string) NodeID {
	var b strings.Builder
	b.WriteString(rootSegment)
	for _, s := range segments {
		b.WriteByte('.')
		b.WriteString(EscapePathSegment(s))
	}
	return NodeID(b.String())
}

// splitEscaped splits a NodeID on unescaped dots and removes the escapes.
func splitEscaped(id string) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c == '\\' && i+1 < len(id):
			i++
			cur.WriteByte(id[i])
		case c == '.':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(parts, cur.String())
}

// queryPath renders segments as a gjson/sjson path. objectKeys marks the
// segments that name object members; numeric-looking member keys get the
// ':' prefix that forces object-key semantics on set operations.
func queryPath(segments []string, objectKeys []bool) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		e := escapeQuerySegment(s)
		if i < len(objectKeys) && objectKeys[i] && isNumeric(s) {
			e = ":" + e
		}
		escaped[i] = e
	}
	return strings.Join(escaped, ".")
}

func escapeQuerySegment(seg string) string {
	needsEscape := false
	for i := 0; i < len(seg); i++ {
		if shouldEscapePathChar(seg[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return seg
	}

	var b strings.Builder
	b.Grow(len(seg) * 2)
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if shouldEscapePathChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func shouldEscapePathChar(c byte) bool {
	switch c {
	case '\\', '.', ':', '|', '@', '*', '?', '#', ',', '(', ')', '=', '!', '<', '>', '~':
		return true
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
