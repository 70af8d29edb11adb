// Package document defines the JSON-shaped trade record and the pure
// structural operations over it: deep copy, dot-path lookup, and the
// null-aware deep merge used by partial updates.
package document

import "strings"

// Document is a decoded JSON object keyed by a top-level "id" field.
// Values follow encoding/json conventions: map[string]any, []any,
// string, float64, bool, nil.
type Document map[string]any

// ID returns the document's "id" field, or "" when missing or not a string.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Clone returns a deep copy of the document. Mutating the copy never
// affects the original, at any nesting depth.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return copyMap(d)
}

// CloneValue deep-copies an arbitrary JSON value.
func CloneValue(v any) any {
	return copyValue(v)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case Document:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Lookup resolves a dot-separated field path against the document.
// A missing key or a path segment that descends into a non-object
// yields nil rather than an error.
func (d Document) Lookup(path string) any {
	var current any = map[string]any(d)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil
		}
		v, ok := m[key]
		if !ok {
			return nil
		}
		current = v
	}
	return current
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return t, true
	default:
		return nil, false
	}
}
