package registry

import (
	"strconv"

	"github.com/standardbeagle/codexdex/internal/filesource"
	"github.com/standardbeagle/codexdex/internal/store"
	"github.com/standardbeagle/codexdex/internal/tokenize"
)

// Enumerators holds every registered filesource.Enumerator factory,
// keyed by the <Source Type="..."> attribute value.
var Enumerators = New[filesource.Enumerator]()

// Filters holds every registered filesource.Filter factory, keyed by
// <Filter Type="...">.
var Filters = New[filesource.Filter]()

// Tokenizers holds every registered tokenize.Tokenizer factory, keyed by
// a caller-chosen name — used when a writer is configured with a custom
// Contents tokenizer (§4.2) rather than the schema default.
var Tokenizers = New[tokenize.Tokenizer]()

// StorageProviders holds every registered store.Storage factory, keyed
// by a caller-chosen name (e.g. "Directory", "Memory").
var StorageProviders = New[store.Storage]()

// Highlighters records which highlighter type names are enabled and the
// file extensions each applies to, keyed by <Highlighter Type="...">.
// There is one highlighter implementation (package highlight); this
// table exists so XML configuration can still select and scope it the
// way the original plugin-discovery design did, per §9's redesign note.
var Highlighters = New[HighlighterBinding]()

// HighlighterBinding names the file extensions one highlighter
// configuration applies to.
type HighlighterBinding struct {
	FileExtensions []string
}

func init() {
	Enumerators.Register("FixedList", func(attrs map[string]string) (filesource.Enumerator, error) {
		return &filesource.FixedListEnumerator{Paths: splitList(attrs["Paths"])}, nil
	})
	Enumerators.Register("Directory", func(attrs map[string]string) (filesource.Enumerator, error) {
		return &filesource.DirectoryEnumerator{Root: attrs["Root"], Pattern: attrs["Pattern"]}, nil
	})
	Enumerators.Register("Catalogue", func(attrs map[string]string) (filesource.Enumerator, error) {
		return &filesource.CatalogueEnumerator{CataloguePath: attrs["Path"]}, nil
	})

	Filters.Register("PassThrough", func(map[string]string) (filesource.Filter, error) {
		return filesource.PassThroughFilter{}, nil
	})
	Filters.Register("Wildcard", func(attrs map[string]string) (filesource.Filter, error) {
		return filesource.NewWildcardFilter(attrs["Pattern"], parseBool(attrs["Negate"]))
	})
	Filters.Register("Regex", func(attrs map[string]string) (filesource.Filter, error) {
		return filesource.NewRegexFilter(attrs["Pattern"], parseBool(attrs["Negate"]))
	})
	// And/Or/Not are not registered here: they compose already-built
	// child filters, so xmlconfig.BuildFilter handles them recursively
	// instead of going through this flat attrs-only factory table.

	Tokenizers.Register("Content", func(map[string]string) (tokenize.Tokenizer, error) {
		return tokenize.NewContentTokenizer(), nil
	})
	Tokenizers.Register("Path", func(map[string]string) (tokenize.Tokenizer, error) {
		return tokenize.NewPathTokenizer(), nil
	})

	StorageProviders.Register("Directory", func(attrs map[string]string) (store.Storage, error) {
		return store.NewDirectoryStorage(attrs["Path"])
	})
	StorageProviders.Register("Memory", func(map[string]string) (store.Storage, error) {
		return store.NewMemoryStorage(), nil
	})
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ';' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
