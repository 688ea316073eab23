package xmlconfig

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codexdex/internal/errs"
	"github.com/standardbeagle/codexdex/internal/filesource"
	"github.com/standardbeagle/codexdex/internal/index"
	"github.com/standardbeagle/codexdex/internal/registry"
	"github.com/standardbeagle/codexdex/internal/store"
)

// BuildFilter constructs the filesource.Filter tree described by cfg.
// And/Or/Not are handled recursively here rather than through the flat
// registry.Filters table, since they compose already-built child
// filters instead of being built from a flat attribute bag. A nil cfg
// yields the identity filter. An unrecognized leaf Type is skipped —
// BuildFilter returns (nil, nil) for it; BuildSources and a Not filter
// substitute PassThroughFilter for it, and And/Or leave it out of their
// children (§6 "unknown types are skipped").
func BuildFilter(cfg *FilterConfig) (filesource.Filter, error) {
	if cfg == nil {
		return filesource.PassThroughFilter{}, nil
	}
	switch cfg.Type {
	case "And":
		children, err := buildChildren(cfg.Filters)
		if err != nil {
			return nil, err
		}
		return &filesource.AndFilter{Filters: children}, nil
	case "Or":
		children, err := buildChildren(cfg.Filters)
		if err != nil {
			return nil, err
		}
		return &filesource.OrFilter{Filters: children}, nil
	case "Not":
		if len(cfg.Filters) != 1 {
			return nil, errs.NewConfigError("Not filter", fmt.Errorf("expects exactly one child <Filter>, got %d", len(cfg.Filters)))
		}
		inner, err := BuildFilter(&cfg.Filters[0])
		if err != nil {
			return nil, err
		}
		if inner == nil {
			inner = filesource.PassThroughFilter{}
		}
		return &filesource.NotFilter{Inner: inner}, nil
	default:
		f, ok, err := registry.Filters.Create(cfg.Type, cfg.Configuration)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return f, nil
	}
}

func buildChildren(children []FilterConfig) ([]filesource.Filter, error) {
	out := make([]filesource.Filter, 0, len(children))
	for i := range children {
		f, err := BuildFilter(&children[i])
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// BuildEnumerator constructs the enumerator a <Source> element
// describes, or (nil, nil) if its Type is not registered.
func BuildEnumerator(cfg *SourceConfig) (filesource.Enumerator, error) {
	e, ok, err := registry.Enumerators.Create(cfg.Type, cfg.Configuration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return e, nil
}

// Source pairs one built enumerator with its filter.
type Source struct {
	Enumerator filesource.Enumerator
	Filter     filesource.Filter
}

// BuildSources builds every <Source> in cfg, skipping ones with an
// unregistered Type.
func BuildSources(cfg *IndexConfig) ([]Source, error) {
	out := make([]Source, 0, len(cfg.Sources))
	for i := range cfg.Sources {
		src := &cfg.Sources[i]
		e, err := BuildEnumerator(src)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}
		f, err := BuildFilter(src.Filter)
		if err != nil {
			return nil, err
		}
		if f == nil {
			f = filesource.PassThroughFilter{}
		}
		out = append(out, Source{Enumerator: e, Filter: f})
	}
	return out, nil
}

// BuildHighlighters resolves each <Highlighter> element to the file
// extensions it applies to. An unregistered Type is not skipped: it
// yields a binding that carries only its FileExtensions.
func BuildHighlighters(cfg *IndexConfig) ([]registry.HighlighterBinding, error) {
	out := make([]registry.HighlighterBinding, 0, len(cfg.Highlighters))
	for _, h := range cfg.Highlighters {
		binding, ok, err := registry.Highlighters.Create(h.Type, h.Configuration)
		if err != nil {
			return nil, err
		}
		if !ok {
			binding = registry.HighlighterBinding{}
		}
		binding.FileExtensions = splitExtensions(h.FileExtensions)
		out = append(out, binding)
	}
	return out, nil
}

func splitExtensions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IndexFromXML parses data and builds its sources, without opening
// storage. It is the read-only counterpart to OpenIndexFromXML, useful
// for validating a configuration file before committing to opening its
// index directory (§6 "index_from_xml").
func IndexFromXML(data []byte) (*IndexConfig, []Source, error) {
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, nil
	}
	sources, err := BuildSources(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sources, nil
}

// OpenIndexFromXML parses data and opens the writer lock on the index
// directory it names (§6 "open_index_from_xml"). The caller is
// responsible for calling Dispose on the returned writer.
func OpenIndexFromXML(data []byte, files index.FileProvider) (*index.Writer, *IndexConfig, error) {
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, nil
	}
	storage, err := store.NewDirectoryStorage(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	w, err := index.OpenWriter(storage, files)
	if err != nil {
		return nil, nil, err
	}
	return w, cfg, nil
}
