package tokenize

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexRule pairs a token type with the pattern that produces it. Patterns
// are combined into one alternation with named capture groups — one per
// rule — so that regexp can find the leftmost match across all rules in a
// single pass; when several rules match at the same position, the earliest
// rule wins (§4.1 Regex tokenizer).
type RegexRule struct {
	TokenType     Type
	Pattern       string
	CaseSensitive bool
}

// RegexTokenizer scans input with an ordered set of named-group
// alternatives and assigns each match the token type of whichever capture
// group matched.
type RegexTokenizer struct {
	rules   []RegexRule
	groups  []string
	re      *regexp.Regexp
	typeIdx map[string]Type
}

// NewRegexTokenizer compiles the given rules into a single alternation.
// Construction fails loudly (§4.1 Failure semantics) on an invalid
// pattern.
func NewRegexTokenizer(rules []RegexRule) (*RegexTokenizer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("tokenize: regex tokenizer requires at least one rule")
	}
	groups := make([]string, len(rules))
	typeIdx := make(map[string]Type, len(rules))
	parts := make([]string, len(rules))
	for i, rule := range rules {
		name := fmt.Sprintf("g%d", i)
		groups[i] = name
		typeIdx[name] = rule.TokenType
		pattern := rule.Pattern
		if !rule.CaseSensitive {
			pattern = "(?i:" + pattern + ")"
		}
		parts[i] = fmt.Sprintf("(?P<%s>%s)", name, pattern)
	}
	combined := strings.Join(parts, "|")
	re, err := regexp.Compile(combined)
	if err != nil {
		return nil, fmt.Errorf("tokenize: invalid regex rule set: %w", err)
	}
	return &RegexTokenizer{rules: rules, groups: groups, re: re, typeIdx: typeIdx}, nil
}

func (tz *RegexTokenizer) Tokenize(src []byte) (Stream, error) {
	matches := tz.re.FindAllSubmatchIndex(src, -1)
	if matches == nil {
		return NewSliceStream(nil), nil
	}
	names := tz.re.SubexpNames()
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		// m[0], m[1] is the whole match; each named group g occupies
		// m[2*idx], m[2*idx+1] where idx is its position among SubexpNames.
		for gi := 1; gi < len(names); gi++ {
			if names[gi] == "" {
				continue
			}
			start, end := m[2*gi], m[2*gi+1]
			if start < 0 {
				continue
			}
			tokens = append(tokens, Token{
				Text:     string(src[start:end]),
				Type:     tz.typeIdx[names[gi]],
				Position: start,
				Length:   end - start,
				Line:     NoPos,
				Column:   NoPos,
			})
			break
		}
	}
	return NewSliceStream(tokens), nil
}
