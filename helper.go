// File: cogwheel/helper.go
package cogwheel

import (
	"reflect"
	"strings"
)

// navigateToPath walks a nested map[string]any along path segments.
// The second return value reports whether a value exists at the path.
func navigateToPath(nested map[string]any, segments []string) (any, bool) {
	var current any = nested

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// fieldKey returns the document key for a struct field, or "" if the
// field is excluded from (de)serialization.
func fieldKey(field reflect.StructField, tagName string) string {
	if !field.IsExported() {
		return ""
	}

	tag := field.Tag.Get(tagName)
	if tag == "-" {
		return ""
	}

	key := field.Name
	if tag != "" {
		if name := strings.Split(tag, ",")[0]; name != "" {
			key = name
		}
	}
	return key
}

// fieldByKey finds the field of a struct value whose document key
// matches key.
func fieldByKey(v reflect.Value, key, tagName string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if fieldKey(t.Field(i), tagName) == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// isValidKeySegment checks if a single path segment is a valid bare key part.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// Bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
