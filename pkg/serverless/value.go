package serverless

import (
	"encoding/json"
	"strings"
)

// Lookup walks a decoded JSON tree (map[string]any / []any / scalars) along a dotted
// path such as "aws.function.arn". Any missing key or non-object intermediate yields
// (nil, false). An empty path returns the tree itself.
func Lookup(tree any, path string) (any, bool) {
	if path == "" {
		return tree, tree != nil
	}
	current := tree
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		next, ok := obj[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// LookupString is Lookup restricted to string leaves
func LookupString(tree any, path string) (string, bool) {
	v, ok := Lookup(tree, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Decode converts the value at path into T through a JSON round trip
func Decode[T any](tree any, path string) (T, bool) {
	var out T
	v, ok := Lookup(tree, path)
	if !ok {
		return out, false
	}
	if typed, ok := v.(T); ok {
		return typed, true
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// ToTree converts any JSON-encodable value (structs included) into a decoded tree
func ToTree(v any) (any, error) {
	switch v.(type) {
	case nil, map[string]any, []any, string, bool, float64:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, NewSerializationError(err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, NewSerializationError(err)
	}
	return tree, nil
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case map[string]string:
		out := make(map[string]any, len(obj))
		for k, s := range obj {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
