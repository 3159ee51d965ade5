// Package record holds the decoded input of a quote: the document metadata and
// the ordered line-item rows, plus the alias tables used to read fields from them.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one table row (or the document metadata) as decoded from JSON.
// Values are strings, json.Number, float64, bool, nested maps or slices.
type Record map[string]any

// Field is a semantic value read from a Record through an ordered list of
// candidate keys. The first key holding a non-empty value wins.
type Field struct {
	Name    string
	Keys    []string
	Default string
}

// Resolve returns the text of the first non-empty candidate key, or the
// field default when none is set.
func (f Field) Resolve(r Record) string {
	for _, k := range f.Keys {
		if s := Text(r[k]); s != "" {
			return s
		}
	}
	return f.Default
}

// Group returns the first candidate value that is a nested mapping.
func (f Field) Group(r Record) Record {
	for _, k := range f.Keys {
		switch m := r[k].(type) {
		case map[string]any:
			if len(m) > 0 {
				return Record(m)
			}
		case Record:
			if len(m) > 0 {
				return m
			}
		}
	}
	return nil
}

// Text renders a raw value as cell text. Nested mappings render empty; they
// are read through Field.Group instead.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, Record:
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := Text(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
