package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndUnknown(t *testing.T) {
	r := New[string]()
	r.Register("upper", func(attrs map[string]string) (string, error) {
		return attrs["value"] + "!", nil
	})

	got, ok, err := r.Create("upper", map[string]string{"value": "hi"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi!", got)

	_, ok, err = r.Create("missing", nil)
	require.NoError(t, err)
	assert.False(t, ok, "an unregistered name must report ok=false, not an error")
}

func TestRegistryOverrideAndNames(t *testing.T) {
	r := New[int]()
	r.Register("a", func(map[string]string) (int, error) { return 1, nil })
	r.Register("b", func(map[string]string) (int, error) { return 2, nil })
	r.Register("a", func(map[string]string) (int, error) { return 99, nil })

	assert.Equal(t, []string{"a", "b"}, r.Names())
	got, ok, err := r.Create("a", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 99, got)
}

func TestBuiltinEnumeratorsAndFiltersRegistered(t *testing.T) {
	for _, name := range []string{"FixedList", "Directory", "Catalogue"} {
		assert.Contains(t, Enumerators.Names(), name)
	}
	for _, name := range []string{"PassThrough", "Wildcard", "Regex"} {
		assert.Contains(t, Filters.Names(), name)
	}
}

func TestBuiltinWildcardFilterFactory(t *testing.T) {
	f, ok, err := Filters.Create("Wildcard", map[string]string{"Pattern": "**/*.go"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, f.Accept("a/b.go"))
	assert.False(t, f.Accept("a/b.txt"))
}
