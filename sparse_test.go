// File: cogwheel/sparse_test.go
package cogwheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// establishBasic returns a builder already holding the shared fixture.
func establishBasic(t *testing.T) *Builder[basicConfig] {
	t.Helper()
	b := New[basicConfig]()
	require.NoError(t, b.UseString(basicTOML, VariantTOML))
	return b
}

// TestMergeAllowList tests that the field-path allow-list gates overlays
func TestMergeAllowList(t *testing.T) {
	t.Run("EmptyListIsIdentity", func(t *testing.T) {
		b := establishBasic(t)
		require.NoError(t, b.Merge(`some_string = "Goodbye, world!"`, nil, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assertBasicConfig(t, cfg)
	})

	t.Run("ListedPathApplies", func(t *testing.T) {
		b := establishBasic(t)
		require.NoError(t, b.Merge(`some_string = "Goodbye, world!"`, []string{"some_string"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "Goodbye, world!", cfg.SomeString)
		assert.True(t, cfg.SomeBool)
		assert.Equal(t, int32(-4), cfg.SomeNest.SomeInt)
		assert.InDelta(t, 3.1415927, cfg.SomeNest.SomeFloat, 1e-6)
		assert.Equal(t, uint32(2147483648), cfg.SomeNest.SomeUnsigned)
	})

	t.Run("UnlistedPathNeverApplies", func(t *testing.T) {
		overlay := `
some_string = "Goodbye, world!"
some_bool = false
`
		b := establishBasic(t)
		require.NoError(t, b.Merge(overlay, []string{"some_string"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "Goodbye, world!", cfg.SomeString)
		// some_bool was in the overlay text but not allow-listed
		assert.True(t, cfg.SomeBool)
	})

	t.Run("UnsuppliedPathIsSkipped", func(t *testing.T) {
		b := establishBasic(t)
		// The overlay has no value for some_string; asking for it is a no-op
		require.NoError(t, b.Merge(`some_bool = false`, []string{"some_string"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assertBasicConfig(t, cfg)
	})
}

// TestMergeNested tests recursive sparse application
func TestMergeNested(t *testing.T) {
	t.Run("LeafPath", func(t *testing.T) {
		overlay := `
[some_nest]
some_int = 42
`
		b := establishBasic(t)
		require.NoError(t, b.Merge(overlay, []string{"some_nest.some_int"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, int32(42), cfg.SomeNest.SomeInt)
		assert.InDelta(t, 3.1415927, cfg.SomeNest.SomeFloat, 1e-6)
		assert.Equal(t, uint32(2147483648), cfg.SomeNest.SomeUnsigned)
	})

	t.Run("SubtreePathUpdatesOnlySuppliedKeys", func(t *testing.T) {
		overlay := `
[some_nest]
some_int = 7
some_float = 1.5
`
		b := establishBasic(t)
		require.NoError(t, b.Merge(overlay, []string{"some_nest"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, int32(7), cfg.SomeNest.SomeInt)
		assert.InDelta(t, 1.5, cfg.SomeNest.SomeFloat, 1e-6)
		// Sibling absent from the overlay stays untouched
		assert.Equal(t, uint32(2147483648), cfg.SomeNest.SomeUnsigned)
	})

	t.Run("OverlappingPathsLastWins", func(t *testing.T) {
		overlay := `
[some_nest]
some_int = 9
some_float = 2.5
`
		b := establishBasic(t)
		require.NoError(t, b.Merge(overlay, []string{"some_nest.some_int", "some_nest"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, int32(9), cfg.SomeNest.SomeInt)
		assert.InDelta(t, 2.5, cfg.SomeNest.SomeFloat, 1e-6)
		assert.Equal(t, uint32(2147483648), cfg.SomeNest.SomeUnsigned)
	})
}

// TestMergeVariants tests overlays decoded from the other formats
func TestMergeVariants(t *testing.T) {
	t.Run("JSONOverlay", func(t *testing.T) {
		b := establishBasic(t)
		overlay := `{"some_nest": {"some_int": -99}}`
		require.NoError(t, b.Merge(overlay, []string{"some_nest.some_int"}, VariantJSON))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, int32(-99), cfg.SomeNest.SomeInt)
		assert.Equal(t, "Hello, world!", cfg.SomeString)
	})

	t.Run("YAMLOverlay", func(t *testing.T) {
		b := establishBasic(t)
		overlay := "some_string: \"Goodbye, world!\"\n"
		require.NoError(t, b.Merge(overlay, []string{"some_string"}, VariantYAML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "Goodbye, world!", cfg.SomeString)
	})
}

// TestMergeErrors tests the failure modes of Merge
func TestMergeErrors(t *testing.T) {
	t.Run("UnknownFieldPath", func(t *testing.T) {
		b := establishBasic(t)
		err := b.Merge(`some_string = "x"`, []string{"nonexistent"}, VariantTOML)
		assert.ErrorIs(t, err, ErrUnknownFieldPath)
	})

	t.Run("UnknownNestedSegment", func(t *testing.T) {
		b := establishBasic(t)
		err := b.Merge(`some_string = "x"`, []string{"some_nest.nonexistent"}, VariantTOML)
		assert.ErrorIs(t, err, ErrUnknownFieldPath)
	})

	t.Run("PathThroughLeaf", func(t *testing.T) {
		b := establishBasic(t)
		err := b.Merge(`some_string = "x"`, []string{"some_string.deeper"}, VariantTOML)
		assert.ErrorIs(t, err, ErrUnknownFieldPath)
	})

	t.Run("InvalidSegment", func(t *testing.T) {
		b := establishBasic(t)
		err := b.Merge(`some_string = "x"`, []string{"some string!"}, VariantTOML)
		assert.ErrorIs(t, err, ErrUnknownFieldPath)
	})

	t.Run("MalformedOverlay", func(t *testing.T) {
		b := establishBasic(t)
		err := b.Merge(`some_string = `, []string{"some_string"}, VariantTOML)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("FailedMergeKeepsState", func(t *testing.T) {
		b := establishBasic(t)
		require.Error(t, b.Merge(`some_string = "x"`, []string{"nonexistent"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assertBasicConfig(t, cfg)
	})
}

type pointerNestConfig struct {
	Name string       `toml:"name"`
	Nest *basicNested `toml:"nest"`
}

// TestMergePointerNest tests overlay application through optional
// (pointer) nested records
func TestMergePointerNest(t *testing.T) {
	t.Run("AllocatesOnApply", func(t *testing.T) {
		b := New[pointerNestConfig]()
		require.NoError(t, b.UseString(`name = "test"`, VariantTOML))

		overlay := `
[nest]
some_int = 5
`
		require.NoError(t, b.Merge(overlay, []string{"nest.some_int"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		require.NotNil(t, cfg.Nest)
		assert.Equal(t, int32(5), cfg.Nest.SomeInt)
	})

	t.Run("UnknownPathKeepsState", func(t *testing.T) {
		b := New[pointerNestConfig]()
		require.NoError(t, b.UseString("name = \"test\"\n\n[nest]\nsome_int = 1\nsome_float = 0.5\nsome_unsigned = 2\n", VariantTOML))

		overlay := `
[nest]
some_int = 99
`
		// The second path is unknown; the first must not leak through
		// the shared pointer into the held value.
		err := b.Merge(overlay, []string{"nest.some_int", "bogus"}, VariantTOML)
		require.ErrorIs(t, err, ErrUnknownFieldPath)

		cfg, buildErr := b.Build()
		require.NoError(t, buildErr)
		require.NotNil(t, cfg.Nest)
		assert.Equal(t, int32(1), cfg.Nest.SomeInt)
	})

	t.Run("FailedDecodeKeepsState", func(t *testing.T) {
		b := New[pointerNestConfig]()
		require.NoError(t, b.UseString("name = \"test\"\n\n[nest]\nsome_int = 1\nsome_float = 0.5\nsome_unsigned = 2\n", VariantTOML))

		overlay := `
[nest]
some_int = 99
some_unsigned = "not a number"
`
		// The first path applies, then the second fails to decode; the
		// held value behind the pointer must stay untouched.
		err := b.Merge(overlay, []string{"nest.some_int", "nest.some_unsigned"}, VariantTOML)
		require.ErrorIs(t, err, ErrDecode)

		cfg, buildErr := b.Build()
		require.NoError(t, buildErr)
		require.NotNil(t, cfg.Nest)
		assert.Equal(t, int32(1), cfg.Nest.SomeInt)
		assert.Equal(t, uint32(2), cfg.Nest.SomeUnsigned)
	})

	t.Run("SkippedPathLeavesNil", func(t *testing.T) {
		b := New[pointerNestConfig]()
		require.NoError(t, b.UseString(`name = "test"`, VariantTOML))

		require.NoError(t, b.Merge(`name = "other"`, []string{"nest.some_int"}, VariantTOML))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Nil(t, cfg.Nest)
		assert.Equal(t, "test", cfg.Name)
	})
}
