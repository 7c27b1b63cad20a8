// File: cogwheel/sparse.go
package cogwheel

import (
	"fmt"
	"reflect"
	"strings"
)

// mergeValue applies an overlay document onto target for each
// allow-listed field path, in order. Later overlapping paths win.
// target must be a non-nil pointer to a struct.
//
// The overlay is the decoded map form of a sparse document: a key absent
// from it means "do not touch". A path the overlay has no value for is
// silently skipped; a path that does not resolve against the target type
// fails with ErrUnknownFieldPath. Paths not listed are never applied,
// even when the overlay text carries a value for them.
func mergeValue(target any, overlay map[string]any, fieldPaths []string, tagName string) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("merge target must be a non-nil pointer, got %T", target)
	}

	root := rv.Elem()
	if root.Kind() != reflect.Struct {
		return fmt.Errorf("merge target must point to a struct, got %T", target)
	}

	// Validate the whole allow-list up front so an unknown path is
	// reported before anything is applied, and is reported even when the
	// overlay carries nothing there.
	for _, path := range fieldPaths {
		for _, segment := range strings.Split(path, ".") {
			if !isValidKeySegment(segment) {
				return fmt.Errorf("%w: invalid segment %q in path %q", ErrUnknownFieldPath, segment, path)
			}
		}
		if err := checkFieldPath(root.Type(), strings.Split(path, "."), path, tagName); err != nil {
			return err
		}
	}

	for _, path := range fieldPaths {
		segments := strings.Split(path, ".")

		value, present := navigateToPath(overlay, segments)
		if !present {
			// Allow-listed but not supplied by the overlay text
			continue
		}

		field := walkField(root, segments, tagName)
		if err := decodeInto(field, value, tagName); err != nil {
			return fmt.Errorf("%w: field path %q: %w", ErrDecode, path, err)
		}
	}

	return nil
}

// checkFieldPath verifies that path segments resolve through nested
// struct fields of t.
func checkFieldPath(t reflect.Type, segments []string, path, tagName string) error {
	for _, segment := range segments {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return fmt.Errorf("%w: %q (segment %q does not address a struct)", ErrUnknownFieldPath, path, segment)
		}

		found := false
		for i := 0; i < t.NumField(); i++ {
			if fieldKey(t.Field(i), tagName) == segment {
				t = t.Field(i).Type
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q (unknown segment %q)", ErrUnknownFieldPath, path, segment)
		}
	}

	return nil
}

// walkField follows validated path segments through a struct value and
// returns the addressable field the path names. Nil pointers along the
// way are allocated; non-nil ones are replaced with clones of their
// pointees, so decoding into the result can never write through memory
// shared with a previously held value.
func walkField(root reflect.Value, segments []string, tagName string) reflect.Value {
	current := root

	for _, segment := range segments {
		current = clonePointers(current)

		// The path was validated against the type, the field is there.
		current, _ = fieldByKey(current, segment, tagName)
	}

	// The leaf may itself be a pointer; detach its pointee too.
	if current.Kind() == reflect.Ptr && !current.IsNil() {
		clonePointers(current)
	}

	return current
}

// clonePointers dereferences v down to its pointee, allocating nil
// pointers and replacing non-nil ones with fresh copies.
func clonePointers(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		clone := reflect.New(v.Type().Elem())
		if !v.IsNil() {
			clone.Elem().Set(v.Elem())
		}
		v.Set(clone)
		v = clone.Elem()
	}
	return v
}
