package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexTokenizerAssignsTypeFromMatchingGroup(t *testing.T) {
	tz, err := NewRegexTokenizer([]RegexRule{
		{TokenType: "Number", Pattern: `\d+`, CaseSensitive: true},
		{TokenType: "Word", Pattern: `[A-Za-z]+`, CaseSensitive: true},
	})
	require.NoError(t, err)

	s, err := tz.Tokenize([]byte("foo 123 bar"))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 3)
	assert.Equal(t, Type("Word"), toks[0].Type)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, Type("Number"), toks[1].Type)
	assert.Equal(t, "123", toks[1].Text)
	assert.Equal(t, Type("Word"), toks[2].Type)
	assert.Equal(t, "bar", toks[2].Text)
}

func TestRegexTokenizerCaseInsensitiveRule(t *testing.T) {
	tz, err := NewRegexTokenizer([]RegexRule{
		{TokenType: "Kw", Pattern: `func`, CaseSensitive: false},
	})
	require.NoError(t, err)
	s, err := tz.Tokenize([]byte("FUNC Func func"))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 3)
}

func TestRegexTokenizerEarliestRuleWinsTies(t *testing.T) {
	tz, err := NewRegexTokenizer([]RegexRule{
		{TokenType: "First", Pattern: `[A-Za-z]+`, CaseSensitive: true},
		{TokenType: "Second", Pattern: `[A-Za-z0-9]+`, CaseSensitive: true},
	})
	require.NoError(t, err)
	s, err := tz.Tokenize([]byte("abc"))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 1)
	assert.Equal(t, Type("First"), toks[0].Type)
}

func TestRegexTokenizerRejectsEmptyRuleSet(t *testing.T) {
	_, err := NewRegexTokenizer(nil)
	assert.Error(t, err)
}

func TestRegexTokenizerRejectsInvalidPattern(t *testing.T) {
	_, err := NewRegexTokenizer([]RegexRule{{TokenType: "Bad", Pattern: `(`, CaseSensitive: true}})
	assert.Error(t, err)
}

func TestRegexTokenizerNoMatchesYieldsEmptyStream(t *testing.T) {
	tz, err := NewRegexTokenizer([]RegexRule{{TokenType: "Number", Pattern: `\d+`, CaseSensitive: true}})
	require.NoError(t, err)
	s, err := tz.Tokenize([]byte("no digits here"))
	require.NoError(t, err)
	assert.Empty(t, Drain(s))
}
