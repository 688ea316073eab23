package query

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codexdex/internal/schema"
)

// fieldBinding names a query-string field prefix and whether terms
// scoped to it should be case-folded to match that field's analyzer
// output.
type fieldBinding struct {
	Field schema.FieldName
	Fold  bool
}

var fieldTable = map[string]fieldBinding{
	"path":                    {schema.FieldPath, true},
	"extension":               {schema.FieldExtension, true},
	"contents":                {schema.FieldContents, false},
	"contentscaseinsensitive": {schema.FieldContentsCI, true},
	"tags":                    {schema.FieldTags, false},
	"tagscaseinsensitive":     {schema.FieldTagsCI, true},
}

// Parser parses query strings for one search type/case-sensitivity
// combination into a Node tree (§4.4).
type Parser struct {
	SearchType   SearchType
	DefaultField schema.FieldName
	FoldDefault  bool
}

// NewParser returns the parser for searchType under the given
// case-sensitivity setting. Path is always matched case-insensitively
// regardless of caseSensitive (§4.4 "Path is always matched
// case-insensitively"). For Tags, the case-insensitive variant is wired
// to the TagsCaseInsensitive field — not, as the original implementation
// did, to the case-insensitive Contents analyzer; see DESIGN.md's Open
// Question Log for this deliberate divergence, flagged as a likely bug in
// §9.
func NewParser(searchType SearchType, caseSensitive bool) *Parser {
	var field schema.FieldName
	fold := false
	switch searchType {
	case SearchPath:
		field, fold = schema.FieldPath, true
	case SearchContents:
		if caseSensitive {
			field = schema.FieldContents
		} else {
			field, fold = schema.FieldContentsCI, true
		}
	case SearchTags:
		if caseSensitive {
			field = schema.FieldTags
		} else {
			field, fold = schema.FieldTagsCI, true
		}
	}
	return &Parser{SearchType: searchType, DefaultField: field, FoldDefault: fold}
}

// IsValid reports whether query parses without error (§7 "is_valid_query").
func IsValid(searchType SearchType, caseSensitive bool, query string) bool {
	_, err := NewParser(searchType, caseSensitive).Parse(query)
	return err == nil
}

// Parse parses a full query string into a Node tree.
func (p *Parser) Parse(query string) (Node, error) {
	ps, err := newParseState(query)
	if err != nil {
		return nil, err
	}
	node, err := ps.parseOr(p.DefaultField, p.FoldDefault)
	if err != nil {
		return nil, err
	}
	if ps.cur.kind != tokEOF {
		return nil, fmt.Errorf("unexpected input near %q", ps.cur.text)
	}
	return node, nil
}

type parseState struct {
	lexer *lexer
	cur   lexToken
	peek  lexToken
}

func newParseState(query string) (*parseState, error) {
	ps := &parseState{lexer: newLexer(query)}
	if err := ps.advance(); err != nil {
		return nil, err
	}
	if err := ps.advance(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *parseState) advance() error {
	ps.cur = ps.peek
	t, err := ps.lexer.next()
	if err != nil {
		return err
	}
	ps.peek = t
	return nil
}

func startsAtom(k tokenKind) bool {
	switch k {
	case tokLParen, tokWord, tokString, tokNot:
		return true
	default:
		return false
	}
}

func (ps *parseState) parseOr(field schema.FieldName, fold bool) (Node, error) {
	left, err := ps.parseAnd(field, fold)
	if err != nil {
		return nil, err
	}
	clauses := []Node{left}
	for ps.cur.kind == tokOr {
		if err := ps.advance(); err != nil {
			return nil, err
		}
		right, err := ps.parseAnd(field, fold)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, right)
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return &OrNode{Clauses: clauses}, nil
}

func (ps *parseState) parseAnd(field schema.FieldName, fold bool) (Node, error) {
	left, err := ps.parseNot(field, fold)
	if err != nil {
		return nil, err
	}
	clauses := []Node{left}
	for {
		if ps.cur.kind == tokAnd {
			if err := ps.advance(); err != nil {
				return nil, err
			}
			right, err := ps.parseNot(field, fold)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, right)
			continue
		}
		if startsAtom(ps.cur.kind) {
			// Implicit AND between juxtaposed terms.
			right, err := ps.parseNot(field, fold)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, right)
			continue
		}
		break
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return &AndNode{Clauses: clauses}, nil
}

func (ps *parseState) parseNot(field schema.FieldName, fold bool) (Node, error) {
	if ps.cur.kind == tokNot {
		if err := ps.advance(); err != nil {
			return nil, err
		}
		inner, err := ps.parseAtom(field, fold)
		if err != nil {
			return nil, err
		}
		return &NotNode{Inner: inner}, nil
	}
	return ps.parseAtom(field, fold)
}

func (ps *parseState) parseAtom(field schema.FieldName, fold bool) (Node, error) {
	// field:term / field:"phrase"
	if ps.cur.kind == tokWord && ps.peek.kind == tokColon {
		name := strings.ToLower(ps.cur.text)
		if binding, ok := fieldTable[name]; ok {
			if err := ps.advance(); err != nil { // consume field word
				return nil, err
			}
			if err := ps.advance(); err != nil { // consume colon
				return nil, err
			}
			return ps.parseTermOrPhrase(binding.Field, binding.Fold)
		}
	}

	switch ps.cur.kind {
	case tokLParen:
		if err := ps.advance(); err != nil {
			return nil, err
		}
		node, err := ps.parseOr(field, fold)
		if err != nil {
			return nil, err
		}
		if ps.cur.kind != tokRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		if err := ps.advance(); err != nil {
			return nil, err
		}
		return node, nil
	case tokString, tokWord:
		return ps.parseTermOrPhrase(field, fold)
	default:
		return nil, fmt.Errorf("expected term, phrase, or '(' near %q", ps.cur.text)
	}
}

func (ps *parseState) parseTermOrPhrase(field schema.FieldName, fold bool) (Node, error) {
	switch ps.cur.kind {
	case tokString:
		text := ps.cur.text
		if err := ps.advance(); err != nil {
			return nil, err
		}
		terms := strings.Fields(text)
		if fold {
			for i, t := range terms {
				terms[i] = strings.ToLower(t)
			}
		}
		return &PhraseNode{Field: field, Terms: terms}, nil
	case tokWord:
		text := ps.cur.text
		if err := ps.advance(); err != nil {
			return nil, err
		}
		wildcard := strings.ContainsAny(text, "*?")
		if fold {
			text = strings.ToLower(text)
		}
		return &TermNode{Field: field, Term: text, Wildcard: wildcard}, nil
	default:
		return nil, fmt.Errorf("expected term or phrase near %q", ps.cur.text)
	}
}
