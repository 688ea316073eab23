package tokenize

// PathSeparators is the separator set the schema's Path analyzer splits
// on (§3 fixed schema table: "path-splitter (lowercasing on separators
// `:/\.`)").
var PathSeparators = NewSeparatorSet(':', '/', '\\', '.')

// NewPathTokenizer returns the tokenizer backing the Path field analyzer:
// it splits on `:`, `/`, `\`, `.` and emits no separator tokens of its own
// (case folding is applied by the analyzer, not the tokenizer).
func NewPathTokenizer() Tokenizer {
	return NewSeparatorOnlyTokenizer(PathSeparators, false, false)
}

// ExtensionSeparators is the separator set used when tokenizing the
// Extension field — whitespace splits runs, and a small set of path/URL
// separators are also treated as boundaries so a stray leading slash in a
// raw extension value doesn't get absorbed into the token.
var ExtensionSeparators = NewSeparatorSet('/', '\\')

// NewExtensionTokenizer returns the whitespace+separator tokenizer backing
// the Extension field analyzer.
func NewExtensionTokenizer() Tokenizer {
	return NewWhitespaceSeparatorTokenizer(ExtensionSeparators, false)
}

// ContentSeparators is the default separator set for the Contents
// content tokenizer: common source-code punctuation that should not be
// absorbed into identifier-like word tokens.
var ContentSeparators = NewSeparatorSet(
	'.', ',', ';', ':', '(', ')', '{', '}', '[', ']', '<', '>',
	'+', '-', '*', '/', '%', '=', '!', '&', '|', '^', '~', '?',
	'"', '\'', '`', '@', '#', '$', '\\',
)

// NewContentTokenizer returns the default content tokenizer used by the
// Contents/ContentsCaseInsensitive field analyzers when no custom
// tokenizer is supplied to the writer (§4.2 "submits it under either the
// default analyzer or one synthesized from tokenizer").
func NewContentTokenizer() Tokenizer {
	return NewWhitespaceSeparatorTokenizer(ContentSeparators, false)
}
