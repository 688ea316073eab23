// Package query implements the per-field query parsers of §4.4: one
// parser each for the Path, Contents, and Tags search types (with
// per-field case-insensitive variants), understanding boolean AND/OR/NOT,
// grouping, field-scoped terms, phrases, and prefix/suffix/infix
// wildcards.
//
// Grounded on the boolean-query / field-scoped-term shape used across the
// retrieval pack's search engines (e.g. other_examples' zoekt query
// package and standardbeagle-lci/internal/search/engine.go's requirement
// parsing), adapted to a small hand-rolled recursive-descent parser since
// none of the teacher's own dependencies offer a ready-made query-string
// grammar for this schema.
package query

import "github.com/standardbeagle/codexdex/internal/schema"

// SearchType selects one of the three search-type identifiers of §6.
type SearchType string

const (
	SearchPath     SearchType = "Path"
	SearchContents SearchType = "Contents"
	SearchTags     SearchType = "Tags"
)

// Node is one node of a parsed query tree.
type Node interface {
	node()
}

// TermNode matches a single analyzed term, optionally as a wildcard
// pattern (containing `?`/`*`).
type TermNode struct {
	Field    schema.FieldName
	Term     string
	Wildcard bool
}

func (*TermNode) node() {}

// PhraseNode matches an exact, ordered run of terms at adjacent
// positions within one field's termvector.
type PhraseNode struct {
	Field schema.FieldName
	Terms []string
}

func (*PhraseNode) node() {}

// AndNode requires every Clauses entry to match the same document. A
// clause may be a NotNode, in which case it subtracts from the result
// instead of contributing to it (see the executor in search/executor.go).
type AndNode struct {
	Clauses []Node
}

func (*AndNode) node() {}

// OrNode requires at least one Clauses entry to match.
type OrNode struct {
	Clauses []Node
}

func (*OrNode) node() {}

// NotNode negates Inner. The executor evaluates it as every live file
// document minus those Inner matches, whether it stands alone or is a
// clause inside an AndNode/OrNode.
type NotNode struct {
	Inner Node
}

func (*NotNode) node() {}
