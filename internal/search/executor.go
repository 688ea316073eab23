package search

import (
	"math"
	"regexp"
	"strings"

	"github.com/standardbeagle/codexdex/internal/query"
	"github.com/standardbeagle/codexdex/internal/store"
)

// scoreSet maps a matching document to its accumulated score. A document
// present with score 0 still counts as a match (used for the universe set
// that NotNode subtracts from).
type scoreSet map[store.DocID]float64

// execContext carries the per-search state the recursive evaluator needs:
// the index state itself and the total live file-document count, used for
// the idf term (§4.4 "tf-idf with length normalization").
type execContext struct {
	state     *store.IndexState
	totalDocs int
}

func universeSet(ids []store.DocID) scoreSet {
	m := make(scoreSet, len(ids))
	for _, id := range ids {
		m[id] = 0
	}
	return m
}

func (ctx *execContext) eval(universe []store.DocID, node query.Node) scoreSet {
	switch n := node.(type) {
	case *query.TermNode:
		return ctx.termSet(n)
	case *query.PhraseNode:
		return ctx.phraseSet(n)
	case *query.AndNode:
		sets := make([]scoreSet, len(n.Clauses))
		for i, c := range n.Clauses {
			sets[i] = ctx.eval(universe, c)
		}
		return intersectSets(sets)
	case *query.OrNode:
		sets := make([]scoreSet, len(n.Clauses))
		for i, c := range n.Clauses {
			sets[i] = ctx.eval(universe, c)
		}
		return unionSets(sets)
	case *query.NotNode:
		inner := ctx.eval(universe, n.Inner)
		base := universeSet(universe)
		for id := range inner {
			delete(base, id)
		}
		return base
	default:
		return scoreSet{}
	}
}

func intersectSets(sets []scoreSet) scoreSet {
	if len(sets) == 0 {
		return scoreSet{}
	}
	out := make(scoreSet, len(sets[0]))
	for id, score := range sets[0] {
		total := score
		ok := true
		for _, s := range sets[1:] {
			v, present := s[id]
			if !present {
				ok = false
				break
			}
			total += v
		}
		if ok {
			out[id] = total
		}
	}
	return out
}

func unionSets(sets []scoreSet) scoreSet {
	out := make(scoreSet)
	for _, s := range sets {
		for id, score := range s {
			out[id] += score
		}
	}
	return out
}

// idf returns the inverse document frequency of a term appearing in df
// documents out of totalDocs, using the classic Lucene-style smoothed
// formula so a term present in every document still contributes a small
// positive weight.
func (ctx *execContext) idf(df int) float64 {
	if df <= 0 {
		return 0
	}
	return math.Log(1 + float64(ctx.totalDocs)/float64(df))
}

func (ctx *execContext) termSet(n *query.TermNode) scoreSet {
	terms := []string{n.Term}
	if n.Wildcard {
		terms = matchWildcard(ctx.state.Terms(n.Field), n.Term)
	}
	out := make(scoreSet)
	for _, term := range terms {
		postings := ctx.state.TermPostings(n.Field, term)
		idf := ctx.idf(len(postings))
		for _, p := range postings {
			tf := len(p.Occurrences)
			if tf == 0 {
				tf = 1
			}
			out[p.Doc] += idf * (1 + math.Log(float64(tf)))
		}
	}
	return out
}

func (ctx *execContext) phraseSet(n *query.PhraseNode) scoreSet {
	if len(n.Terms) == 0 {
		return scoreSet{}
	}
	postingLists := make([][]store.Posting, len(n.Terms))
	for i, term := range n.Terms {
		postingLists[i] = ctx.state.TermPostings(n.Field, term)
		if len(postingLists[i]) == 0 {
			return scoreSet{}
		}
	}
	candidateOrdinals := make(map[store.DocID][][]int)
	for i, postings := range postingLists {
		for _, p := range postings {
			ords := make([]int, len(p.Occurrences))
			for j, occ := range p.Occurrences {
				ords[j] = occ.Ordinal
			}
			if candidateOrdinals[p.Doc] == nil {
				candidateOrdinals[p.Doc] = make([][]int, len(n.Terms))
			}
			candidateOrdinals[p.Doc][i] = ords
		}
	}

	idf := ctx.idf(len(postingLists[0]))
	out := make(scoreSet)
	for doc, perTerm := range candidateOrdinals {
		complete := true
		for _, ords := range perTerm {
			if ords == nil {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		if phraseMatches(perTerm) {
			out[doc] = idf * float64(len(n.Terms))
		}
	}
	return out
}

// phraseMatches reports whether there is some starting ordinal o such
// that perTerm[i] contains o+i, for every term index i.
func phraseMatches(perTerm [][]int) bool {
	first := perTerm[0]
	for _, start := range first {
		ok := true
		for i := 1; i < len(perTerm); i++ {
			if !containsInt(perTerm[i], start+i) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// matchWildcard expands a `?`/`*` wildcard pattern against the known
// terms for a field (§4.4 "prefix, suffix, and infix wildcards").
func matchWildcard(terms []string, pattern string) []string {
	re := wildcardToRegexp(pattern)
	var out []string
	for _, t := range terms {
		if re.MatchString(t) {
			out = append(out, t)
		}
	}
	return out
}

func wildcardToRegexp(pattern string) *regexp.Regexp {
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
		// A pattern that fails to compile matches nothing rather than
		// panicking the searcher.
		return regexp.MustCompile("$^")
	}
	return re
}
