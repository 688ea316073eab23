package search

import (
	"fmt"
	"regexp"
	"strings"
)

// compileLike compiles a VB-style Like pattern into a regular expression
// for directory-filter matching (§4.4 directory filters): `?` matches any
// single character, `*` matches any run of characters, `#` matches a
// single digit, `[set]` matches any one character in set, and `[!set]`
// matches any one character not in set.
func compileLike(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '?':
			b.WriteString(".")
		case '*':
			b.WriteString(".*")
		case '#':
			b.WriteString(`\d`)
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("search: unterminated character set in pattern %q", pattern)
			}
			set := string(runes[i+1 : end])
			b.WriteString(translateCharSet(set))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// translateCharSet rewrites a VB-style `[set]`/`[!set]` body into a Go
// regexp character class, escaping the handful of characters that are
// meaningful inside `[...]` in both dialects.
func translateCharSet(set string) string {
	negate := strings.HasPrefix(set, "!")
	if negate {
		set = set[1:]
	}
	escaped := strings.NewReplacer(`\`, `\\`, `]`, `\]`, `^`, `\^`).Replace(set)
	if negate {
		return "[^" + escaped + "]"
	}
	return "[" + escaped + "]"
}
