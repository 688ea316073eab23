// Command codexdex is a thin CLI front end over the index/search/highlight
// packages: "index" (re)builds an index from an XML configuration file,
// "search" runs a query against a built index.
//
// Grounded on standardbeagle-lci/cmd/lci/main.go's urfave/cli/v2 App
// structure, trimmed to this engine's much smaller command surface.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/codexdex/internal/highlight"
	"github.com/standardbeagle/codexdex/internal/index"
	"github.com/standardbeagle/codexdex/internal/progress"
	"github.com/standardbeagle/codexdex/internal/query"
	"github.com/standardbeagle/codexdex/internal/search"
	"github.com/standardbeagle/codexdex/internal/store"
	"github.com/standardbeagle/codexdex/internal/xmlconfig"
)

var userConfig UserConfig

func main() {
	app := &cli.App{
		Name:  "codexdex",
		Usage: "full-text index and search over a source tree",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-config", Usage: "path to a TOML file of default search preferences"},
		},
		Before: func(c *cli.Context) error {
			path := c.String("user-config")
			if path == "" {
				return nil
			}
			cfg, err := LoadUserConfig(path)
			if err != nil {
				return err
			}
			userConfig = cfg
			return nil
		},
		Commands: []*cli.Command{
			indexCommand(),
			searchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "codexdex:", err)
		os.Exit(1)
	}
}

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "build or update an index from an XML configuration file",
		ArgsUsage: "<config.xml>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: codexdex index <config.xml>", 1)
			}
			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}
			w, cfg, err := xmlconfig.OpenIndexFromXML(data, nil)
			if err != nil {
				return err
			}
			if w == nil {
				return cli.Exit("configuration has no Path attribute on <Index>", 1)
			}

			sources, err := xmlconfig.BuildSources(cfg)
			if err != nil {
				return err
			}

			progress.SetWriter(os.Stderr)
			defer progress.SetWriter(nil)

			for _, src := range sources {
				paths, err := src.Enumerator.Enumerate(c.Context)
				if err != nil {
					return err
				}
				for _, path := range paths {
					if !src.Filter.Accept(path) {
						continue
					}
					if err := w.Update(path, nil); err != nil {
						return fmt.Errorf("index %s: %w", path, err)
					}
				}
			}
			return w.Dispose()
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "run a query against a built index",
		ArgsUsage: "<index-path> <query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Value: "Contents", Usage: "Path, Contents, or Tags"},
			&cli.BoolFlag{Name: "case-sensitive"},
			&cli.IntFlag{Name: "limit", Value: 50},
			&cli.BoolFlag{Name: "highlight", Usage: "show matched occurrences in context"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: codexdex search <index-path> <query>", 1)
			}
			indexPath := c.Args().Get(0)
			queryString := c.Args().Get(1)
			typeName, limit := "", 0
			if c.IsSet("type") {
				typeName = c.String("type")
			}
			if c.IsSet("limit") {
				limit = c.Int("limit")
			}
			caseSensitive := c.Bool("case-sensitive")
			userConfig.applyDefaults(&typeName, &caseSensitive, &limit)
			if typeName == "" {
				typeName = c.String("type")
			}
			if limit == 0 {
				limit = c.Int("limit")
			}
			searchType := query.SearchType(typeName)

			storage, err := store.NewDirectoryStorage(indexPath)
			if err != nil {
				return err
			}
			r, err := index.OpenReader(storage, nil)
			if err != nil {
				return err
			}

			s := search.NewSearcher(r)
			hits, total, err := s.Search(searchType, caseSensitive, queryString, search.Options{HitLimit: limit})
			if err != nil {
				return err
			}

			fmt.Printf("%d hit(s) total\n", total)
			h := highlight.NewHighlighter(r)
			for _, hit := range hits {
				fmt.Printf("%s\t%.4f\t%d occurrence(s)\n", hit.Path, hit.Score, len(hit.Occurrences))
				if !c.Bool("highlight") {
					continue
				}
				fragments, err := h.Highlight(hit.Path, searchType, caseSensitive, queryString)
				if err != nil {
					fmt.Fprintf(os.Stderr, "  (highlight failed: %v)\n", err)
					continue
				}
				for _, frag := range fragments {
					for i, line := range frag.Lines {
						fmt.Printf("  %4d: %s\n", frag.StartLine+i+1, line)
					}
				}
			}
			return nil
		},
	}
}

