package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathTokenizerSplitsOnPathSeparators(t *testing.T) {
	tz := NewPathTokenizer()
	s, err := tz.Tokenize([]byte(`src/pkg/file.go`))
	assert.Equal(t, []string{"src", "pkg", "file", "go"}, tokenTexts(t, s, err))
}

func TestNewExtensionTokenizerSplitsOnSlash(t *testing.T) {
	tz := NewExtensionTokenizer()
	s, err := tz.Tokenize([]byte(`/go`))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 1)
	assert.Equal(t, "go", toks[0].Text)
}

func TestNewContentTokenizerSplitsOnPunctuation(t *testing.T) {
	tz := NewContentTokenizer()
	s, err := tz.Tokenize([]byte(`foo(bar, baz);`))
	assert.Equal(t, []string{"foo", "bar", "baz"}, tokenTexts(t, s, err))
}
