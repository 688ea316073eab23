package tokenize

import "unicode/utf8"

// state names the three states of the whitespace/separator scanner (§4.1).
type state int

const (
	stateInit state = iota
	stateWhitespace
	stateNonWhitespace
)

// SeparatorSet is a small set of runes treated as separators by
// WhitespaceSeparatorTokenizer and SeparatorOnlyTokenizer.
type SeparatorSet map[rune]bool

// NewSeparatorSet builds a SeparatorSet from the given runes.
func NewSeparatorSet(runes ...rune) SeparatorSet {
	s := make(SeparatorSet, len(runes))
	for _, r := range runes {
		s[r] = true
	}
	return s
}

func (s SeparatorSet) has(r rune) bool {
	return s != nil && s[r]
}

func isWhitespaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

// WhitespaceSeparatorTokenizer implements the whitespace+separator state
// machine of §4.1: whitespace (including CR, LF) closes an open
// non-whitespace run; a configured separator closes any open run and,
// optionally, is itself emitted as a single-character Separator token;
// every other character accumulates into the current run.
type WhitespaceSeparatorTokenizer struct {
	Separators          SeparatorSet
	EmitSeparatorTokens bool
}

// NewWhitespaceSeparatorTokenizer constructs a tokenizer with the given
// separator set. EmitSeparatorTokens controls whether separator runes are
// themselves surfaced as Type==TypeSeparator tokens.
func NewWhitespaceSeparatorTokenizer(separators SeparatorSet, emitSeparatorTokens bool) *WhitespaceSeparatorTokenizer {
	return &WhitespaceSeparatorTokenizer{Separators: separators, EmitSeparatorTokens: emitSeparatorTokens}
}

func (tz *WhitespaceSeparatorTokenizer) Tokenize(src []byte) (Stream, error) {
	var tokens []Token
	st := stateInit
	runStart := 0
	pos := 0

	closeRun := func(end int) {
		if st == stateNonWhitespace && end > runStart {
			tokens = append(tokens, Token{
				Text:     string(src[runStart:end]),
				Type:     TypeWord,
				Position: runStart,
				Length:   end - runStart,
				Line:     NoPos,
				Column:   NoPos,
			})
		}
	}

	for pos < len(src) {
		r, size := utf8.DecodeRune(src[pos:])
		switch {
		case isWhitespaceRune(r):
			closeRun(pos)
			st = stateWhitespace
		case tz.Separators.has(r):
			closeRun(pos)
			if tz.EmitSeparatorTokens {
				tokens = append(tokens, Token{
					Text:     string(r),
					Type:     TypeSeparator,
					Position: pos,
					Length:   size,
					Line:     NoPos,
					Column:   NoPos,
				})
			}
			st = stateInit
		default:
			if st != stateNonWhitespace {
				runStart = pos
			}
			st = stateNonWhitespace
		}
		pos += size
	}
	closeRun(pos)

	return NewSliceStream(tokens), nil
}

// SeparatorOnlyTokenizer behaves like WhitespaceSeparatorTokenizer but
// treats whitespace as ordinary accumulating text; only configured
// separators close a run. When TrimTokens is set, leading/trailing
// whitespace is stripped from each emitted token and its Position is
// advanced by the number of stripped leading characters.
type SeparatorOnlyTokenizer struct {
	Separators          SeparatorSet
	EmitSeparatorTokens bool
	TrimTokens          bool
}

func NewSeparatorOnlyTokenizer(separators SeparatorSet, emitSeparatorTokens, trimTokens bool) *SeparatorOnlyTokenizer {
	return &SeparatorOnlyTokenizer{
		Separators:          separators,
		EmitSeparatorTokens: emitSeparatorTokens,
		TrimTokens:          trimTokens,
	}
}

func (tz *SeparatorOnlyTokenizer) Tokenize(src []byte) (Stream, error) {
	var tokens []Token
	runStart := 0
	open := false
	pos := 0

	closeRun := func(end int) {
		if !open || end <= runStart {
			open = false
			return
		}
		start := runStart
		text := src[start:end]
		if tz.TrimTokens {
			lead := 0
			for lead < len(text) {
				r, size := utf8.DecodeRune(text[lead:])
				if !isWhitespaceRune(r) {
					break
				}
				lead += size
			}
			trail := len(text)
			for trail > lead {
				r, size := utf8.DecodeLastRune(text[lead:trail])
				if !isWhitespaceRune(r) {
					break
				}
				trail -= size
			}
			text = text[lead:trail]
			start += lead
		}
		if len(text) > 0 {
			tokens = append(tokens, Token{
				Text:     string(text),
				Type:     TypeWord,
				Position: start,
				Length:   len(text),
				Line:     NoPos,
				Column:   NoPos,
			})
		}
		open = false
	}

	for pos < len(src) {
		r, size := utf8.DecodeRune(src[pos:])
		if tz.Separators.has(r) {
			closeRun(pos)
			if tz.EmitSeparatorTokens {
				tokens = append(tokens, Token{
					Text:     string(r),
					Type:     TypeSeparator,
					Position: pos,
					Length:   size,
					Line:     NoPos,
					Column:   NoPos,
				})
			}
			runStart = pos + size
		} else if !open {
			open = true
			runStart = pos
		}
		pos += size
	}
	closeRun(pos)

	return NewSliceStream(tokens), nil
}
