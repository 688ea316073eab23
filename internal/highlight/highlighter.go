// Package highlight implements the occurrence highlighter of §4.5: given
// a file already matched by a query, re-tokenize and re-score its
// original text against that same query to find the byte ranges that
// actually matched, then map those ranges to line/column fragments
// suitable for display.
package highlight

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/standardbeagle/codexdex/internal/analysis"
	"github.com/standardbeagle/codexdex/internal/index"
	"github.com/standardbeagle/codexdex/internal/query"
	"github.com/standardbeagle/codexdex/internal/schema"
)

// Occurrence is one matched token's position in the source text.
type Occurrence struct {
	Term   string
	Start  int
	End    int
	Line   int // 0-based
	Column int // 0-based
}

// Fragment is a contiguous run of source lines containing one or more
// occurrences, padded with surrounding context (§4.5 "fragments of
// surrounding lines").
type Fragment struct {
	StartLine   int // 0-based, inclusive
	EndLine     int // 0-based, inclusive
	Lines       []string
	Occurrences []Occurrence
}

// contextBefore/contextAfter are the number of extra lines of context a
// fragment includes around its occurrences (§4.5 "lines [line-2..line+1]").
const (
	contextBefore = 2
	contextAfter  = 1
)

// Highlighter locates and renders occurrences for files in one snapshot.
type Highlighter struct {
	reader *index.Reader
}

// NewHighlighter binds a Highlighter to reader, mirroring search.NewSearcher's
// free-function pattern to avoid index importing highlight.
func NewHighlighter(reader *index.Reader) *Highlighter {
	return &Highlighter{reader: reader}
}

// Highlight opens path through the reader's FileProvider, analyzes it
// under the field appropriate to searchType/caseSensitive, and returns
// the fragments surrounding every token that matches queryString. For
// Path searches it returns (nil, nil): §4.5 step 1 is explicit that "for
// Path searches, the text is the path itself and no fragment is
// created" — there is no file content to open a context window into.
func (h *Highlighter) Highlight(path string, searchType query.SearchType, caseSensitive bool, queryString string) ([]Fragment, error) {
	occurrences, lines, err := h.scan(path, searchType, caseSensitive, queryString)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		return nil, nil
	}
	return buildFragments(occurrences, lines), nil
}

// Occurrences returns every matched token's position in path's source
// text, without grouping them into display fragments. It is the form
// search.Searcher uses to fold occurrences into a Hit. Like Highlight,
// it returns (nil, nil) for Path searches.
func (h *Highlighter) Occurrences(path string, searchType query.SearchType, caseSensitive bool, queryString string) ([]Occurrence, error) {
	occurrences, _, err := h.scan(path, searchType, caseSensitive, queryString)
	return occurrences, err
}

// scan performs the shared work behind Highlight and Occurrences. A nil
// lines return (with a nil error) signals the Path-search no-op case.
func (h *Highlighter) scan(path string, searchType query.SearchType, caseSensitive bool, queryString string) ([]Occurrence, []string, error) {
	if searchType == query.SearchPath {
		return nil, nil, nil
	}

	parser := query.NewParser(searchType, caseSensitive)
	root, err := parser.Parse(queryString)
	if err != nil {
		return nil, nil, fmt.Errorf("highlight: %w", err)
	}

	rc, err := h.reader.FileProvider().Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("highlight: open %s: %w", path, err)
	}
	content, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("highlight: read %s: %w", path, err)
	}

	analyzer := analysis.Default().For(parser.DefaultField)
	if analyzer == nil {
		return nil, nil, fmt.Errorf("highlight: no analyzer bound to field %s", parser.DefaultField)
	}
	tokens, err := analyzer.Analyze(content)
	if err != nil {
		return nil, nil, fmt.Errorf("highlight: analyze %s: %w", path, err)
	}

	matchers := leafMatchers(root, parser.DefaultField)
	lt := newLineTable(content)
	lines := splitLines(content, lt)

	var occurrences []Occurrence
	for _, tok := range tokens {
		if !matchesAny(tok.Term, matchers) {
			continue
		}
		line, col := lt.LineOf(tok.Start)
		occurrences = append(occurrences, Occurrence{
			Term: tok.Term, Start: tok.Start, End: tok.End,
			Line: line, Column: col,
		})
	}

	return occurrences, lines, nil
}

// leafMatcher matches one analyzed term against a literal or wildcard
// pattern, scoped to a single field.
type leafMatcher struct {
	pattern *regexp.Regexp // nil for a literal match
	literal string
}

func (m leafMatcher) matches(term string) bool {
	if m.pattern != nil {
		return m.pattern.MatchString(term)
	}
	return term == m.literal
}

// leafMatchers walks node collecting every TermNode/PhraseNode leaf bound
// to field, ignoring NotNode polarity — the highlighter marks every span
// that contributed to any part of the query rather than replaying full
// boolean evaluation, since highlighting only needs "would this token
// have counted toward a match somewhere in the query" (§4.5).
func leafMatchers(node query.Node, field schema.FieldName) []leafMatcher {
	var out []leafMatcher
	var walk func(n query.Node)
	walk = func(n query.Node) {
		switch t := n.(type) {
		case *query.TermNode:
			if t.Field != field {
				return
			}
			if t.Wildcard {
				out = append(out, leafMatcher{pattern: wildcardRegexp(t.Term)})
			} else {
				out = append(out, leafMatcher{literal: t.Term})
			}
		case *query.PhraseNode:
			if t.Field != field {
				return
			}
			for _, term := range t.Terms {
				out = append(out, leafMatcher{literal: term})
			}
		case *query.AndNode:
			for _, c := range t.Clauses {
				walk(c)
			}
		case *query.OrNode:
			for _, c := range t.Clauses {
				walk(c)
			}
		case *query.NotNode:
			walk(t.Inner)
		}
	}
	walk(node)
	return out
}

func matchesAny(term string, matchers []leafMatcher) bool {
	for _, m := range matchers {
		if m.matches(term) {
			return true
		}
	}
	return false
}

func wildcardRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return regexp.MustCompile("$^")
	}
	return re
}

func splitLines(content []byte, lt *lineTable) []string {
	lines := make([]string, lt.LineCount())
	for i := range lines {
		start := lt.LineStart(i)
		end := len(content)
		if i+1 < lt.LineCount() {
			end = lt.LineStart(i + 1)
		}
		lines[i] = strings.TrimRight(string(content[start:end]), "\r\n")
	}
	return lines
}

// buildFragments groups occurrences into non-overlapping, context-padded
// line ranges (§4.5 "fragments of surrounding lines").
func buildFragments(occurrences []Occurrence, lines []string) []Fragment {
	if len(occurrences) == 0 {
		return nil
	}
	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].Start < occurrences[j].Start })

	lastLine := len(lines) - 1
	type span struct {
		start, end int
		occ        []Occurrence
	}
	var spans []span
	for _, occ := range occurrences {
		start := occ.Line - contextBefore
		if start < 0 {
			start = 0
		}
		end := occ.Line + contextAfter
		if end > lastLine {
			end = lastLine
		}
		if len(spans) > 0 && start <= spans[len(spans)-1].end+1 {
			last := &spans[len(spans)-1]
			if end > last.end {
				last.end = end
			}
			last.occ = append(last.occ, occ)
			continue
		}
		spans = append(spans, span{start: start, end: end, occ: []Occurrence{occ}})
	}

	out := make([]Fragment, 0, len(spans))
	for _, s := range spans {
		out = append(out, Fragment{
			StartLine:   s.start,
			EndLine:     s.end,
			Lines:       append([]string(nil), lines[s.start:s.end+1]...),
			Occurrences: s.occ,
		})
	}
	return out
}
