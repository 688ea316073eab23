package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codexdex/internal/tokenize"
)

func TestAnalyzeFoldsCaseWhenCaseInsensitive(t *testing.T) {
	a := New(tokenize.NewWhitespaceSeparatorTokenizer(nil, false), CaseInsensitive)
	toks, err := a.Analyze([]byte("Hello World"))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "hello", toks[0].Term)
	assert.Equal(t, "world", toks[1].Term)
}

func TestAnalyzePreservesCaseWhenCaseSensitive(t *testing.T) {
	a := New(tokenize.NewWhitespaceSeparatorTokenizer(nil, false), CaseSensitive)
	toks, err := a.Analyze([]byte("Hello World"))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "Hello", toks[0].Term)
	assert.Equal(t, "World", toks[1].Term)
}

func TestAnalyzeReportsByteSpans(t *testing.T) {
	a := New(tokenize.NewWhitespaceSeparatorTokenizer(nil, false), CaseSensitive)
	toks, err := a.Analyze([]byte("ab cd"))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 0, toks[0].Start)
	assert.Equal(t, 2, toks[0].End)
	assert.Equal(t, 3, toks[1].Start)
	assert.Equal(t, 5, toks[1].End)
}

func TestAnalyzeIsReusableAcrossCalls(t *testing.T) {
	a := New(tokenize.NewWhitespaceSeparatorTokenizer(nil, false), CaseSensitive)
	first, err := a.Analyze([]byte("one"))
	require.NoError(t, err)
	second, err := a.Analyze([]byte("two three"))
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}
