// Package jsonpointer implements RFC 6901 JSON Pointer addressing over
// decoded JSON documents (map[string]any, []any, and scalars). It is the
// only addressing scheme the runtime uses into application state.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeSegment escapes one reference token for inclusion in a pointer:
// "~" becomes "~0" and "/" becomes "~1".
func EncodeSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// DecodeSegment reverses EncodeSegment: "~1" becomes "/" and "~0"
// becomes "~". Order matters per RFC 6901 §4.
func DecodeSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// CreatePath builds a pointer string from unescaped segments. With no
// segments it returns "", the pointer to the whole document.
func CreatePath(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(EncodeSegment(seg))
	}
	return b.String()
}

// Segments splits a pointer into its unescaped reference tokens. The empty
// pointer yields nil. Pointers must be empty or start with "/".
func Segments(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("jsonpointer: %q does not start with '/'", pointer)
	}
	raw := strings.Split(pointer[1:], "/")
	segs := make([]string, len(raw))
	for i, s := range raw {
		segs[i] = DecodeSegment(s)
	}
	return segs, nil
}

// Evaluate resolves a pointer against a decoded JSON document and returns
// the addressed value. It fails when the pointer is malformed or the path
// does not exist in the document.
func Evaluate(doc any, pointer string) (any, error) {
	segs, err := Segments(pointer)
	if err != nil {
		return nil, err
	}
	cur := doc
	for i, seg := range segs {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("jsonpointer: %q not found at %q", seg, CreatePath(segs[:i]...))
			}
			cur = v
		case []any:
			idx, err := arrayIndex(seg, len(node))
			if err != nil {
				return nil, fmt.Errorf("jsonpointer: %v at %q", err, CreatePath(segs[:i]...))
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("jsonpointer: cannot descend into non-container at %q", CreatePath(segs[:i]...))
		}
	}
	return cur, nil
}

// arrayIndex parses an array reference token. The "-" token (end of array)
// is valid in patches but never addresses an existing element.
func arrayIndex(seg string, length int) (int, error) {
	if seg == "-" {
		return 0, fmt.Errorf("index %q refers past the end of the array", seg)
	}
	// RFC 6901 forbids leading zeros.
	if len(seg) > 1 && seg[0] == '0' {
		return 0, fmt.Errorf("invalid array index %q", seg)
	}
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid array index %q", seg)
	}
	if idx >= length {
		return 0, fmt.Errorf("array index %d out of bounds (len %d)", idx, length)
	}
	return idx, nil
}
