// Package search implements the query executor, scorer, and public
// search API of §4.4: boolean/phrase/wildcard query execution over an
// index.Reader snapshot, tf-idf scoring, extension/directory-filter
// post-filtering, and occurrence extraction for each returned hit.
//
// Grounded on standardbeagle-lci/internal/search/engine.go for the shape
// of a Searcher bound to a read-only index snapshot plus an options
// struct, adapted to this schema's boolean query tree instead of the
// teacher's flat requirement list.
package search

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codexdex/internal/highlight"
	"github.com/standardbeagle/codexdex/internal/index"
	"github.com/standardbeagle/codexdex/internal/query"
	"github.com/standardbeagle/codexdex/internal/store"
)

// DirectoryFilter restricts search results to (or excludes them from) a
// directory matched by a VB-style Like pattern (§4.4 directory filters).
type DirectoryFilter struct {
	Pattern   string
	Recursive bool
	Exclusive bool
}

// Options configures one Search call.
type Options struct {
	HitLimit          int
	AllowedExtensions []string
	DirectoryFilters  []DirectoryFilter
}

// Hit is one scored search result, with its match occurrences already
// resolved (§4.4 "search(...) returns a ranked sequence of {path, score,
// occurrences}").
type Hit struct {
	Path        string
	Score       float64
	Occurrences []highlight.Occurrence
}

// Searcher executes queries against one immutable index.Reader snapshot.
type Searcher struct {
	reader     *index.Reader
	highlights *highlight.Highlighter
}

// NewSearcher binds a Searcher to reader. This is a free function rather
// than a Reader method so that package search can depend on *index.Reader
// without index depending back on search.
func NewSearcher(reader *index.Reader) *Searcher {
	return &Searcher{reader: reader, highlights: highlight.NewHighlighter(reader)}
}

// IsValidQuery reports whether queryString parses under searchType and
// caseSensitive without error (§7 "is_valid_query").
func IsValidQuery(searchType query.SearchType, caseSensitive bool, queryString string) bool {
	return query.IsValid(searchType, caseSensitive, queryString)
}

// Search parses queryString for searchType/caseSensitive, executes it
// against the bound snapshot, and returns hits ordered by descending
// score (ties broken by path) after extension and directory filtering,
// plus the total hit count before any hit-limit truncation (§4.4). Each
// returned hit's Occurrences is resolved via the highlighter scoped to
// the same search type and query, so a hit dropped by HitLimit never
// pays that cost.
func (s *Searcher) Search(searchType query.SearchType, caseSensitive bool, queryString string, opts Options) ([]Hit, int, error) {
	parser := query.NewParser(searchType, caseSensitive)
	root, err := parser.Parse(queryString)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	state := s.reader.State()
	universe := make([]store.DocID, s.reader.FileCount())
	for i := range universe {
		id, _ := s.reader.FileDocID(i)
		universe[i] = id
	}

	ctx := &execContext{state: state, totalDocs: len(universe)}
	scores := ctx.eval(universe, root)

	hits := make([]Hit, 0, len(scores))
	for doc, score := range scores {
		idx, ok := s.reader.IndexOfDoc(doc)
		if !ok {
			continue
		}
		path, _ := s.reader.FileAt(idx)
		if !extensionAllowed(path, opts.AllowedExtensions) {
			continue
		}
		if !directoryFiltersAllow(path, opts.DirectoryFilters) {
			continue
		}
		hits = append(hits, Hit{Path: path, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Path < hits[j].Path
	})

	totalHits := len(hits)
	if opts.HitLimit > 0 && len(hits) > opts.HitLimit {
		hits = hits[:opts.HitLimit]
	}

	for i := range hits {
		occurrences, err := s.highlights.Occurrences(hits[i].Path, searchType, caseSensitive, queryString)
		if err != nil {
			return nil, 0, fmt.Errorf("search: occurrences for %s: %w", hits[i].Path, err)
		}
		hits[i].Occurrences = occurrences
	}
	return hits, totalHits, nil
}

func extensionAllowed(path string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if strings.ToLower(a) == ext {
			return true
		}
	}
	return false
}

func directoryFiltersAllow(path string, filters []DirectoryFilter) bool {
	if len(filters) == 0 {
		return true
	}
	dir := filepath.ToSlash(filepath.Dir(path))
	leaf := dir
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		leaf = dir[i+1:]
	}

	hasInclusive := false
	matchedInclusive := false
	for _, f := range filters {
		re, err := compileLike(f.Pattern)
		if err != nil {
			continue
		}
		target := leaf
		if f.Recursive {
			target = dir
		}
		matched := re.MatchString(target)
		if f.Exclusive {
			if matched {
				return false
			}
			continue
		}
		hasInclusive = true
		if matched {
			matchedInclusive = true
		}
	}
	if hasInclusive && !matchedInclusive {
		return false
	}
	return true
}
