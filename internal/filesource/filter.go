// Package filesource implements the file-source composition layer of
// §6: enumerators that produce candidate paths (a fixed list, a
// directory walk, or a catalogue file) and filters that accept or
// reject individual paths, composed via and/or/not combinators.
//
// Grounded on standardbeagle-lci's directory-walking cmd/lci wiring for
// the enumerator shape, and on the pack's bmatcuk/doublestar dependency
// for glob matching instead of a hand-rolled glob engine.
package filesource

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/codexdex/internal/errs"
)

// Filter decides whether one candidate path should be indexed.
type Filter interface {
	Accept(path string) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(path string) bool

func (f FilterFunc) Accept(path string) bool { return f(path) }

// PassThroughFilter accepts every path — the identity filter used when a
// configuration names no filter at all (§6 Filter "PassThrough").
type PassThroughFilter struct{}

func (PassThroughFilter) Accept(string) bool { return true }

// WildcardFilter accepts paths matching a doublestar glob pattern (e.g.
// "**/*.go"); Negate inverts the result.
type WildcardFilter struct {
	Pattern string
	Negate  bool
}

// NewWildcardFilter validates pattern eagerly so a malformed glob is
// reported as a configuration error rather than failing silently on
// every candidate path.
func NewWildcardFilter(pattern string, negate bool) (*WildcardFilter, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errs.NewConfigError("wildcard filter", errInvalidPattern(pattern))
	}
	return &WildcardFilter{Pattern: pattern, Negate: negate}, nil
}

func (f *WildcardFilter) Accept(path string) bool {
	ok, err := doublestar.Match(f.Pattern, path)
	if err != nil {
		return false
	}
	if f.Negate {
		return !ok
	}
	return ok
}

// RegexFilter accepts paths matching a regular expression; Negate
// inverts the result.
type RegexFilter struct {
	re     *regexp.Regexp
	Negate bool
}

// NewRegexFilter compiles pattern eagerly, surfacing a bad regex as a
// configuration error (§7).
func NewRegexFilter(pattern string, negate bool) (*RegexFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.NewConfigError("regex filter", err)
	}
	return &RegexFilter{re: re, Negate: negate}, nil
}

func (f *RegexFilter) Accept(path string) bool {
	ok := f.re.MatchString(path)
	if f.Negate {
		return !ok
	}
	return ok
}

// AndFilter accepts a path only if every child filter accepts it.
type AndFilter struct{ Filters []Filter }

func (f *AndFilter) Accept(path string) bool {
	for _, child := range f.Filters {
		if !child.Accept(path) {
			return false
		}
	}
	return true
}

// OrFilter accepts a path if any child filter accepts it.
type OrFilter struct{ Filters []Filter }

func (f *OrFilter) Accept(path string) bool {
	for _, child := range f.Filters {
		if child.Accept(path) {
			return true
		}
	}
	return false
}

// NotFilter inverts a single child filter.
type NotFilter struct{ Inner Filter }

func (f *NotFilter) Accept(path string) bool {
	return !f.Inner.Accept(path)
}

type errInvalidPattern string

func (e errInvalidPattern) Error() string {
	return "invalid glob pattern: " + string(e)
}
