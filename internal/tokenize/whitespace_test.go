package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(t *testing.T, s Stream, err error) []string {
	t.Helper()
	require.NoError(t, err)
	var out []string
	for _, tok := range Drain(s) {
		out = append(out, tok.Text)
	}
	return out
}

func TestWhitespaceSeparatorTokenizerSplitsOnWhitespace(t *testing.T) {
	tz := NewWhitespaceSeparatorTokenizer(nil, false)
	s, err := tz.Tokenize([]byte("hello   world\tfoo\nbar"))
	assert.Equal(t, []string{"hello", "world", "foo", "bar"}, tokenTexts(t, s, err))
}

func TestWhitespaceSeparatorTokenizerEmitsSeparatorTokens(t *testing.T) {
	tz := NewWhitespaceSeparatorTokenizer(NewSeparatorSet('.', ','), true)
	s, err := tz.Tokenize([]byte("a.b,c"))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 5)
	assert.Equal(t, TypeWord, toks[0].Type)
	assert.Equal(t, "a", toks[0].Text)
	assert.Equal(t, TypeSeparator, toks[1].Type)
	assert.Equal(t, ".", toks[1].Text)
	assert.Equal(t, "b", toks[2].Text)
	assert.Equal(t, ",", toks[3].Text)
	assert.Equal(t, "c", toks[4].Text)
}

func TestWhitespaceSeparatorTokenizerSeparatorWithoutEmitClosesRun(t *testing.T) {
	tz := NewWhitespaceSeparatorTokenizer(NewSeparatorSet('.'), false)
	s, err := tz.Tokenize([]byte("a.b"))
	assert.Equal(t, []string{"a", "b"}, tokenTexts(t, s, err))
}

func TestWhitespaceSeparatorTokenizerTracksBytePositions(t *testing.T) {
	tz := NewWhitespaceSeparatorTokenizer(nil, false)
	s, err := tz.Tokenize([]byte("ab cd"))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 2)
	assert.Equal(t, 0, toks[0].Position)
	assert.Equal(t, 2, toks[0].Length)
	assert.Equal(t, 3, toks[1].Position)
}

func TestSeparatorOnlyTokenizerKeepsWhitespaceInRun(t *testing.T) {
	tz := NewSeparatorOnlyTokenizer(NewSeparatorSet(','), false, false)
	s, err := tz.Tokenize([]byte("hello world,foo bar"))
	assert.Equal(t, []string{"hello world", "foo bar"}, tokenTexts(t, s, err))
}

func TestSeparatorOnlyTokenizerTrimsWhenRequested(t *testing.T) {
	tz := NewSeparatorOnlyTokenizer(NewSeparatorSet(','), false, true)
	s, err := tz.Tokenize([]byte("  hello world  , foo  "))
	require.NoError(t, err)
	toks := Drain(s)
	require.Len(t, toks, 2)
	assert.Equal(t, "hello world", toks[0].Text)
	assert.Equal(t, "foo", toks[1].Text)
}

func TestSeparatorOnlyTokenizerEmptyInputYieldsNoTokens(t *testing.T) {
	tz := NewSeparatorOnlyTokenizer(nil, false, false)
	s, err := tz.Tokenize([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, Drain(s))
}
