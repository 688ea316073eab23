package filesource

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/codexdex/internal/errs"
)

// Enumerator produces the candidate file paths one file source
// contributes to an indexing run (§6).
type Enumerator interface {
	Enumerate(ctx context.Context) ([]string, error)
}

// FixedListEnumerator enumerates exactly the paths it was given, in
// order — the degenerate case, useful for tests and for callers that
// already have a precise file list (§6 "a fixed list").
type FixedListEnumerator struct {
	Paths []string
}

func (e *FixedListEnumerator) Enumerate(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(e.Paths))
	copy(out, e.Paths)
	return out, nil
}

// DirectoryEnumerator walks Root, yielding paths matching Pattern (a
// doublestar glob, relative to Root; an empty Pattern defaults to "**/*",
// which covers every file) (§6 "a directory walk"). The returned paths
// are relative to Root.
type DirectoryEnumerator struct {
	Root    string
	Pattern string
}

func (e *DirectoryEnumerator) Enumerate(ctx context.Context) ([]string, error) {
	pattern := e.Pattern
	if pattern == "" {
		pattern = "**/*"
	}
	fsys := os.DirFS(e.Root)

	var out []string
	var g errgroup.Group
	g.Go(func() error {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return errs.NewIOError("walk", e.Root, err, false)
		}
		out = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// catalogueEntry is one line of a catalogue file: either a literal path
// or a glob pattern relative to Root.
type catalogueEntry struct {
	Root    string   `yaml:"root"`
	Entries []string `yaml:"entries"`
}

// CatalogueEnumerator reads a YAML catalogue file naming one or more
// {root, entries} groups, expanding each entry as a literal path or
// glob pattern under its root (§6 "a catalogue-driven" source).
type CatalogueEnumerator struct {
	CataloguePath string
}

func (e *CatalogueEnumerator) Enumerate(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(e.CataloguePath)
	if err != nil {
		return nil, errs.NewIOError("read catalogue", e.CataloguePath, err, false)
	}
	var groups []catalogueEntry
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, errs.NewConfigError("catalogue", err)
	}

	var out []string
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fsys := os.DirFS(group.Root)
		for _, entry := range group.Entries {
			matches, err := doublestar.Glob(fsys, entry)
			if err != nil {
				return nil, errs.NewConfigError("catalogue entry "+entry, err)
			}
			out = append(out, matches...)
		}
	}
	return out, nil
}

// Filtered applies filter to every path an Enumerator produces.
func Filtered(ctx context.Context, e Enumerator, filter Filter) ([]string, error) {
	paths, err := e.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = PassThroughFilter{}
	}
	out := paths[:0]
	for _, p := range paths {
		if filter.Accept(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
