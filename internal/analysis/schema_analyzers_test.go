package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codexdex/internal/schema"
	"github.com/standardbeagle/codexdex/internal/tokenize"
)

func TestDefaultForRoutesEachAnalyzedField(t *testing.T) {
	s := Default()
	assert.Same(t, s.Path, s.For(schema.FieldPath))
	assert.Same(t, s.Extension, s.For(schema.FieldExtension))
	assert.Same(t, s.Contents, s.For(schema.FieldContents))
	assert.Same(t, s.ContentsCaseInsensitive, s.For(schema.FieldContentsCI))
	assert.Same(t, s.Tags, s.For(schema.FieldTags))
	assert.Same(t, s.TagsCaseInsensitive, s.For(schema.FieldTagsCI))
}

func TestDefaultForUnanalyzedFieldIsNil(t *testing.T) {
	s := Default()
	assert.Nil(t, s.For(schema.FieldURL))
}

func TestDefaultSharesOneTagTokenizerBetweenBothTagAnalyzers(t *testing.T) {
	s := Default()
	assert.Same(t, s.TagTokenizer, s.Tags.Tokenizer)
	assert.Same(t, s.TagTokenizer, s.TagsCaseInsensitive.Tokenizer)
}

func TestWithContentsTokenizerReplacesOnlyContentsAnalyzers(t *testing.T) {
	s := Default()
	custom, err := tokenize.NewRegexTokenizer([]tokenize.RegexRule{{TokenType: "Word", Pattern: `[a-z]+`, CaseSensitive: true}})
	require.NoError(t, err)

	replaced := s.WithContentsTokenizer(custom)

	assert.Same(t, custom, replaced.Contents.Tokenizer)
	assert.Same(t, custom, replaced.ContentsCaseInsensitive.Tokenizer)
	assert.Same(t, s.Path, replaced.Path, "non-content analyzers remain the defaults")
	assert.Same(t, s.Tags, replaced.Tags)

	assert.NotSame(t, s.Contents, replaced.Contents, "the original analyzer set is left untouched")
}
