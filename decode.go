// File: cogwheel/decode.go
package cogwheel

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// decodeInto decodes a single overlay value onto an addressable struct
// field. ZeroFields stays off so a nested record overlay updates only
// the keys it carries, leaving sibling fields of the base untouched.
func decodeInto(field reflect.Value, value any, tagName string) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           field.Addr().Interface(),
		TagName:          tagName,
		WeaklyTypedInput: true,
		ZeroFields:       false,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	return decoder.Decode(value)
}

// decodeHook returns the composite decode hook for type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	)
}

// checkComplete verifies that every required field of t (recursively)
// has a key in the decoded document. Non-pointer fields are required;
// pointer fields are the optional analogue and may be absent. Fields
// tagged "-" are ignored.
func checkComplete(t reflect.Type, doc map[string]any, tagName, prefix string) error {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := fieldKey(field, tagName)
		if key == "" {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		raw, exists := doc[key]
		if !exists {
			if field.Type.Kind() == reflect.Ptr {
				continue // Optional field
			}
			return fmt.Errorf("missing required field %q", path)
		}

		fieldType := field.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		if fieldType.Kind() == reflect.Struct && fieldType != reflect.TypeOf(time.Time{}) {
			subDoc, ok := raw.(map[string]any)
			if !ok {
				// The codec already produced a typed scalar here;
				// nothing further to require below it.
				continue
			}
			if err := checkComplete(fieldType, subDoc, tagName, path); err != nil {
				return err
			}
		}
	}

	return nil
}
