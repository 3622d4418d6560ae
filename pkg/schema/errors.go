package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SchemaKey holds messages that belong to a composite value itself rather
// than to one of its elements.
const SchemaKey = "_schema"

// Tree is a nested error payload keyed by path segment: an int index for
// sequences or a string key for mappings. Leaves are a string or a []string.
type Tree map[any]any

// ValidationError represents one or more validation failures.
//
// Messages is a string, a []string, or a Tree mirroring the shape of the
// data being validated.
type ValidationError struct {
	Messages any
}

// NewValidationError wraps a message payload.
func NewValidationError(messages any) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	var parts []string
	walk("", e.Messages, func(path, msg string) {
		if path == "" {
			parts = append(parts, msg)
			return
		}
		parts = append(parts, path+": "+msg)
	})
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// Flatten returns the messages keyed by dotted path. Messages attached to
// the root are keyed by SchemaKey.
func (e *ValidationError) Flatten() map[string][]string {
	out := make(map[string][]string)
	walk("", e.Messages, func(path, msg string) {
		if path == "" {
			path = SchemaKey
		}
		out[path] = append(out[path], msg)
	})
	return out
}

// Paths returns every (path, message) pair in deterministic order.
func (e *ValidationError) Paths() [][2]string {
	var out [][2]string
	walk("", e.Messages, func(path, msg string) {
		out = append(out, [2]string{path, msg})
	})
	return out
}

// MarshalJSON emits the payload with every tree key rendered as a string.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(plain(e.Messages))
}

// MarshalYAML implements yaml.Marshaler.
func (e *ValidationError) MarshalYAML() (any, error) {
	return plain(e.Messages), nil
}

// AsValidationError reports whether err (or any error in its chain) is a
// *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MergeMessages combines two payloads. Strings and lists concatenate into a
// list, trees merge key by key, and a flat payload merged with a tree lands
// under the tree's SchemaKey.
func MergeMessages(a, b any) any {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}

	ta, aTree := a.(Tree)
	tb, bTree := b.(Tree)
	switch {
	case aTree && bTree:
		out := ta.clone()
		for k, v := range tb {
			if cur, ok := out[k]; ok {
				out[k] = MergeMessages(cur, v)
			} else {
				out[k] = v
			}
		}
		return out
	case aTree:
		out := ta.clone()
		out[SchemaKey] = MergeMessages(ta[SchemaKey], b)
		return out
	case bTree:
		out := tb.clone()
		out[SchemaKey] = MergeMessages(a, tb[SchemaKey])
		return out
	}

	return append(asList(a), asList(b)...)
}

func (t Tree) clone() Tree {
	out := make(Tree, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	return out
}

func isEmpty(m any) bool {
	switch v := m.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case Tree:
		return len(v) == 0
	}
	return false
}

// asList always returns a fresh slice so callers may append to it.
func asList(m any) []string {
	switch v := m.(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case nil:
		return nil
	}
	return []string{fmt.Sprint(m)}
}

func walk(prefix string, m any, fn func(path, msg string)) {
	switch v := m.(type) {
	case nil:
	case string:
		fn(prefix, v)
	case []string:
		for _, s := range v {
			fn(prefix, s)
		}
	case Tree:
		for _, k := range sortedKeys(v) {
			seg := fmt.Sprint(k)
			path := seg
			if prefix != "" {
				path = prefix + "." + seg
			}
			if k == SchemaKey {
				path = prefix
			}
			walk(path, v[k], fn)
		}
	default:
		fn(prefix, fmt.Sprint(v))
	}
}

// sortedKeys orders int segments numerically ahead of string segments.
func sortedKeys(t Tree) []any {
	keys := make([]any, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, iInt := keys[i].(int)
		kj, jInt := keys[j].(int)
		switch {
		case iInt && jInt:
			return ki < kj
		case iInt:
			return true
		case jInt:
			return false
		}
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

func plain(m any) any {
	t, ok := m.(Tree)
	if !ok {
		return m
	}
	out := make(map[string]any, len(t))
	for k, v := range t {
		out[fmt.Sprint(k)] = plain(v)
	}
	return out
}
