// Package analysis binds tokenizers to a case-folding mode (§2 "Analyzer —
// wraps a tokenizer plus a case-folding mode") and adapts the tokenizer
// pipeline's byte-offset tokens into the (term_text, start_offset,
// end_offset) triples the writer and searcher consume (§4.6).
package analysis

import (
	"strings"

	"github.com/standardbeagle/codexdex/internal/tokenize"
)

// CaseMode selects whether an analyzer preserves or folds token case.
type CaseMode int

const (
	CaseSensitive CaseMode = iota
	CaseInsensitive
)

// Analyzer pairs a tokenizer with a case mode. Analyzers are stateless and
// safe to share across concurrent add/search calls (§5 "Analyzers are
// stateless and shared"); only the tokenizer's own stream state is
// per-invocation.
type Analyzer struct {
	Tokenizer tokenize.Tokenizer
	CaseMode  CaseMode
}

// New constructs an Analyzer.
func New(tz tokenize.Tokenizer, mode CaseMode) *Analyzer {
	return &Analyzer{Tokenizer: tz, CaseMode: mode}
}

// AnalyzedToken is one term as it will be posted to the index: term text
// with case folding applied, its byte span in the original text, and the
// originating tokenizer.Token (so payload data such as tag links survives
// analysis).
type AnalyzedToken struct {
	Term     string
	Start    int
	End      int
	Original tokenize.Token
}

// Analyze runs the analyzer's tokenizer over src and folds case per the
// analyzer's mode. It supports reuse across documents simply by being
// called again on a fresh byte slice — the adapter holds no state of its
// own between calls (§4.6 "supports reuse across documents by resetting
// the reader without reconstruction").
func (a *Analyzer) Analyze(src []byte) ([]AnalyzedToken, error) {
	stream, err := a.Tokenizer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	var out []AnalyzedToken
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}
		term := tok.Text
		if a.CaseMode == CaseInsensitive {
			term = strings.ToLower(term)
		}
		out = append(out, AnalyzedToken{
			Term:     term,
			Start:    tok.Position,
			End:      tok.Position + tok.Length,
			Original: tok,
		})
	}
	return out, nil
}
