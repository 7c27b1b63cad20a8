// File: cogwheel/convenience.go
package cogwheel

import "fmt"

// Load decodes text as the given variant into a configuration value.
// This is the one-call path for string sources.
func Load[T any](text string, variant Variant) (T, error) {
	b := New[T]()
	if err := b.UseString(text, variant); err != nil {
		var zero T
		return zero, err
	}
	return b.Build()
}

// LoadFile reads and decodes the file at path into a configuration
// value. Pass VariantUnknown to resolve the variant from the extension.
func LoadFile[T any](path string, variant Variant) (T, error) {
	b := New[T]()
	if err := b.UseFile(path, variant); err != nil {
		var zero T
		return zero, err
	}
	return b.Build()
}

// MustLoadFile is like LoadFile but panics on error.
func MustLoadFile[T any](path string, variant Variant) T {
	value, err := LoadFile[T](path, variant)
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return value
}

// Write serializes data to a new file at path, failing if one already
// exists. The written file is re-read as a round-trip check.
func Write[T any](path string, data T, variant Variant) error {
	b := New[T]()
	if err := b.Make(path, data, variant); err != nil {
		return err
	}
	_, err := b.Build()
	return err
}

// Overwrite is Write, but truncates an existing file instead of failing.
func Overwrite[T any](path string, data T, variant Variant) error {
	b := New[T]()
	if err := b.MakeOverride(path, data, variant); err != nil {
		return err
	}
	_, err := b.Build()
	return err
}

// WriteDefault writes the default value of T to a new file at path.
// The default is the zero value, refined by SetDefaults when T
// implements Defaulter.
func WriteDefault[T any](path string, variant Variant) error {
	b := New[T]()
	if err := b.MakeDefault(path, variant); err != nil {
		return err
	}
	_, err := b.Build()
	return err
}

// OverwriteDefault is WriteDefault, but truncates an existing file
// instead of failing.
func OverwriteDefault[T any](path string, variant Variant) error {
	b := New[T]()
	if err := b.MakeDefaultOverride(path, variant); err != nil {
		return err
	}
	_, err := b.Build()
	return err
}
