package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codexdex/internal/schema"
)

func TestNewParserFieldBinding(t *testing.T) {
	p := NewParser(SearchPath, false)
	assert.Equal(t, schema.FieldPath, p.DefaultField)
	assert.True(t, p.FoldDefault, "Path is always matched case-insensitively")

	p = NewParser(SearchPath, true)
	assert.True(t, p.FoldDefault, "case_sensitive must not affect Path search")

	p = NewParser(SearchContents, true)
	assert.Equal(t, schema.FieldContents, p.DefaultField)
	assert.False(t, p.FoldDefault)

	p = NewParser(SearchContents, false)
	assert.Equal(t, schema.FieldContentsCI, p.DefaultField)
	assert.True(t, p.FoldDefault)

	p = NewParser(SearchTags, false)
	assert.Equal(t, schema.FieldTagsCI, p.DefaultField, "case-insensitive tag search must bind to the tags CI field, not contents CI")
}

func TestParseSimpleTerm(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("needle")
	require.NoError(t, err)
	term, ok := node.(*TermNode)
	require.True(t, ok)
	assert.Equal(t, "needle", term.Term)
	assert.Equal(t, schema.FieldContents, term.Field)
}

func TestParseBooleanPrecedence(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("a AND b OR c")
	require.NoError(t, err)
	or, ok := node.(*OrNode)
	require.True(t, ok)
	require.Len(t, or.Clauses, 2)
	_, ok = or.Clauses[0].(*AndNode)
	assert.True(t, ok, "AND must bind tighter than OR")
}

func TestParseImplicitAnd(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("foo bar")
	require.NoError(t, err)
	and, ok := node.(*AndNode)
	require.True(t, ok)
	assert.Len(t, and.Clauses, 2)
}

func TestParseGrouping(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("(a OR b) AND c")
	require.NoError(t, err)
	and, ok := node.(*AndNode)
	require.True(t, ok)
	require.Len(t, and.Clauses, 2)
	_, ok = and.Clauses[0].(*OrNode)
	assert.True(t, ok)
}

func TestParseNot(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("NOT foo")
	require.NoError(t, err)
	_, ok := node.(*NotNode)
	assert.True(t, ok)
}

func TestParseFieldScopedTerm(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("extension:go")
	require.NoError(t, err)
	term, ok := node.(*TermNode)
	require.True(t, ok)
	assert.Equal(t, schema.FieldExtension, term.Field)
	assert.Equal(t, "go", term.Term)
}

func TestParsePhrase(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse(`"hello world"`)
	require.NoError(t, err)
	phrase, ok := node.(*PhraseNode)
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "world"}, phrase.Terms)
}

func TestParseWildcard(t *testing.T) {
	p := NewParser(SearchContents, true)
	node, err := p.Parse("fo*")
	require.NoError(t, err)
	term, ok := node.(*TermNode)
	require.True(t, ok)
	assert.True(t, term.Wildcard)
}

func TestParseCaseFolding(t *testing.T) {
	p := NewParser(SearchContents, false)
	node, err := p.Parse("NEEDLE")
	require.NoError(t, err)
	term, ok := node.(*TermNode)
	require.True(t, ok)
	assert.Equal(t, "needle", term.Term)
}

func TestParseUnterminatedQuoteFails(t *testing.T) {
	p := NewParser(SearchContents, true)
	_, err := p.Parse(`"unterminated`)
	assert.Error(t, err)
}

func TestParseUnbalancedParenFails(t *testing.T) {
	p := NewParser(SearchContents, true)
	_, err := p.Parse("(a AND b")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(SearchContents, true, "foo AND bar"))
	assert.False(t, IsValid(SearchContents, true, "foo AND"))
}
