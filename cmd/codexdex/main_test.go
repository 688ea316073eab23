package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeTestProject(t *testing.T) (root, configPath string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget.go"),
		[]byte("package demo\n\n// TODO(widget): render a frame\nfunc Render() {}\n"), 0o644))

	indexPath := filepath.Join(root, ".index")
	configPath = filepath.Join(root, "index.xml")
	config := `<Index Path="` + indexPath + `">
  <Sources>
    <Source Type="Directory">
      <Configuration Root="` + root + `" Pattern="**/*.go"/>
    </Source>
  </Sources>
</Index>`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))
	return root, configPath
}

func TestIndexCommandBuildsIndex(t *testing.T) {
	_, configPath := writeTestProject(t)

	app := &cli.App{Commands: []*cli.Command{indexCommand()}}
	require.NoError(t, app.Run([]string{"codexdex", "index", configPath}))
}

func TestIndexCommandRequiresOneArg(t *testing.T) {
	app := &cli.App{Commands: []*cli.Command{indexCommand()}}
	err := app.Run([]string{"codexdex", "index"})
	require.Error(t, err)
}

func TestSearchCommandFindsIndexedFile(t *testing.T) {
	root, configPath := writeTestProject(t)

	indexApp := &cli.App{Commands: []*cli.Command{indexCommand()}}
	require.NoError(t, indexApp.Run([]string{"codexdex", "index", configPath}))

	searchApp := &cli.App{Commands: []*cli.Command{searchCommand()}}
	err := searchApp.Run([]string{"codexdex", "search", filepath.Join(root, ".index"), "Render"})
	require.NoError(t, err)
}
