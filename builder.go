// File: cogwheel/builder.go
package cogwheel

import (
	"errors"
	"fmt"
	"os"
	"reflect"
)

// defaultTagName is the struct tag consulted for field addressing.
const defaultTagName = "toml"

// Defaulter lets a configuration type refine its zero value before it
// is written out by MakeDefault and MakeDefaultOverride.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Builder accumulates a configuration value of type T from exactly one
// establishing operation (UseString, UseFile, or one of the Make*
// methods) and zero or more Merge operations, and is consumed by Build.
//
// A failed operation leaves the previously held value intact, so a
// caller may retry with a different source. A Builder holds mutable
// state and is not safe for concurrent use.
type Builder[T any] struct {
	value   *T
	tagName string
}

// New creates an empty configuration builder.
func New[T any]() *Builder[T] {
	return &Builder[T]{
		tagName: defaultTagName,
	}
}

// WithTagName changes the struct tag used for field addressing
// (default "toml").
func (b *Builder[T]) WithTagName(tagName string) *Builder[T] {
	if tagName != "" {
		b.tagName = tagName
	}
	return b
}

// UseString decodes text as the given variant and establishes the
// builder's value. Every required (non-pointer) field of T must be
// present in the document, recursively, or the decode fails.
func (b *Builder[T]) UseString(text string, variant Variant) error {
	codec, err := codecFor(variant)
	if err != nil {
		return err
	}

	var value T
	if err := codec.Unmarshal([]byte(text), &value); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, variant, err)
	}

	// Decode the raw document once more to verify completeness.
	doc := make(map[string]any)
	if err := codec.Unmarshal([]byte(text), &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, variant, err)
	}
	if err := checkComplete(reflect.TypeOf(value), doc, b.tagName, ""); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, variant, err)
	}

	b.value = &value
	return nil
}

// UseFile reads the file at path and establishes the builder's value
// from its content. Pass VariantUnknown to resolve the variant from the
// file extension.
func (b *Builder[T]) UseFile(path string, variant Variant) error {
	if variant == VariantUnknown {
		var err error
		if variant, err = GuessVariant(path); err != nil {
			return err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat config file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q", ErrFileIsDirectory, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return b.UseString(string(data), variant)
}

// Make serializes data to a new file at path and establishes the
// builder from it. It fails without touching the file if one already
// exists; use MakeOverride to overwrite. Pass VariantUnknown to resolve
// the variant from the file extension.
//
// The freshly written file is re-read as a round-trip check. If that
// verifying read fails, the operation reports the error even though the
// file now exists on disk.
func (b *Builder[T]) Make(path string, data T, variant Variant) error {
	return b.make(path, data, variant, false)
}

// MakeOverride is Make, but truncates an existing file at path instead
// of failing.
func (b *Builder[T]) MakeOverride(path string, data T, variant Variant) error {
	return b.make(path, data, variant, true)
}

// MakeDefault writes the default value of T to a new file at path and
// establishes the builder from it. The default is the zero value,
// refined by SetDefaults when T implements Defaulter.
func (b *Builder[T]) MakeDefault(path string, variant Variant) error {
	return b.make(path, defaultValue[T](), variant, false)
}

// MakeDefaultOverride is MakeDefault, but truncates an existing file at
// path instead of failing.
func (b *Builder[T]) MakeDefaultOverride(path string, variant Variant) error {
	return b.make(path, defaultValue[T](), variant, true)
}

func defaultValue[T any]() T {
	var value T
	if d, ok := any(&value).(Defaulter); ok {
		d.SetDefaults()
	}
	return value
}

func (b *Builder[T]) make(path string, data T, variant Variant, overwrite bool) error {
	if variant == VariantUnknown {
		var err error
		if variant, err = GuessVariant(path); err != nil {
			return err
		}
	}

	codec, err := codecFor(variant)
	if err != nil {
		return err
	}

	encoded, err := codec.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, variant, err)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %q", ErrFileIsDirectory, path)
	}

	// O_EXCL gives create-exclusive semantics without a check-then-create
	// race against other processes.
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file %q: %w", path, err)
	}

	if _, err := file.Write(encoded); err != nil {
		file.Close()
		return fmt.Errorf("failed to write config file %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close config file %q: %w", path, err)
	}

	// Verifying re-read; also establishes the builder.
	return b.UseFile(path, variant)
}

// Merge decodes text as a sparse overlay of T and applies it onto the
// currently held value, limited to the given allow-list of dot-notation
// field paths (e.g. "some_nest.some_int"). Paths apply in order; later
// overlapping paths win. An empty fieldPaths list leaves the value
// unchanged.
//
// A path the overlay supplies no value for is skipped silently. A path
// that does not name a field of T fails with ErrUnknownFieldPath.
// Merging before an establishing operation fails with ErrNoConfiguration.
func (b *Builder[T]) Merge(text string, fieldPaths []string, variant Variant) error {
	if b.value == nil {
		return ErrNoConfiguration
	}

	codec, err := codecFor(variant)
	if err != nil {
		return err
	}

	overlay := make(map[string]any)
	if err := codec.Unmarshal([]byte(text), &overlay); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, variant, err)
	}

	// Merge into a copy so a failed merge leaves the held value intact.
	next := *b.value
	if err := mergeValue(&next, overlay, fieldPaths, b.tagName); err != nil {
		return err
	}

	b.value = &next
	return nil
}

// Build returns the held configuration value and spends the builder.
// It fails with ErrNoConfiguration if no value was established.
func (b *Builder[T]) Build() (T, error) {
	if b.value == nil {
		var zero T
		return zero, ErrNoConfiguration
	}

	value := *b.value
	b.value = nil
	return value, nil
}
