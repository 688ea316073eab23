package analysis

import (
	"github.com/standardbeagle/codexdex/internal/schema"
	"github.com/standardbeagle/codexdex/internal/tokenize"
)

// SchemaAnalyzers is the schema-aware analyzer that routes each field to
// its designated analyzer (§4.2 "Per-field analyzer binding"). A single
// TagTokenizer instance is shared between the Tags and TagsCaseInsensitive
// analyzers so the writer's tag-collection protocol (§4.2) only needs one
// subscription per add/update call.
type SchemaAnalyzers struct {
	Path                    *Analyzer
	Extension               *Analyzer
	Contents                *Analyzer
	ContentsCaseInsensitive *Analyzer
	Tags                    *Analyzer
	TagsCaseInsensitive     *Analyzer
	TagTokenizer            *tokenize.TagTokenizer
}

// Default returns the schema analyzer set built from the default
// tokenizers (§4.2 "submits it under ... the default analyzer").
func Default() *SchemaAnalyzers {
	tagTok := tokenize.NewTagTokenizer()
	return &SchemaAnalyzers{
		Path:                    New(tokenize.NewPathTokenizer(), CaseInsensitive),
		Extension:               New(tokenize.NewExtensionTokenizer(), CaseInsensitive),
		Contents:                New(tokenize.NewContentTokenizer(), CaseSensitive),
		ContentsCaseInsensitive: New(tokenize.NewContentTokenizer(), CaseInsensitive),
		Tags:                    New(tagTok, CaseSensitive),
		TagsCaseInsensitive:     New(tagTok, CaseInsensitive),
		TagTokenizer:            tagTok,
	}
}

// WithContentsTokenizer returns a copy of s with the Contents and
// ContentsCaseInsensitive analyzers replaced by two analyzers synthesized
// from tz — one case-sensitive, one case-insensitive — per §4.2:
// "the writer synthesizes two analyzers ... and substitutes them only for
// the Contents* fields; path, extension, and tag analyzers remain
// defaults."
func (s *SchemaAnalyzers) WithContentsTokenizer(tz tokenize.Tokenizer) *SchemaAnalyzers {
	clone := *s
	clone.Contents = New(tz, CaseSensitive)
	clone.ContentsCaseInsensitive = New(tz, CaseInsensitive)
	return &clone
}

// For returns the analyzer bound to the given field, or nil for fields
// with IndexingNone/unanalyzed descriptors.
func (s *SchemaAnalyzers) For(name schema.FieldName) *Analyzer {
	switch name {
	case schema.FieldPath:
		return s.Path
	case schema.FieldExtension:
		return s.Extension
	case schema.FieldContents:
		return s.Contents
	case schema.FieldContentsCI:
		return s.ContentsCaseInsensitive
	case schema.FieldTags:
		return s.Tags
	case schema.FieldTagsCI:
		return s.TagsCaseInsensitive
	default:
		return nil
	}
}
