package index

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codexdex/internal/schema"
	"github.com/standardbeagle/codexdex/internal/store"
)

// fakeFiles is an in-memory FileProvider so index tests never touch the
// real filesystem.
type fakeFiles map[string]string

func (f fakeFiles) Open(path string) (io.ReadCloser, error) {
	content, ok := f[path]
	if !ok {
		return nil, &fakeNotFoundError{path: path}
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}

func (f fakeFiles) Stat(path string) (FileStat, error) {
	content, ok := f[path]
	if !ok {
		return FileStat{}, &fakeNotFoundError{path: path}
	}
	return FileStat{ModTime: time.Unix(0, 0), Size: int64(len(content))}, nil
}

type fakeNotFoundError struct{ path string }

func (e *fakeNotFoundError) Error() string { return "no such file: " + e.path }

func TestWriterAddIndexesContentsAndPath(t *testing.T) {
	files := fakeFiles{"src/a.go": "package main\n\nfunc needle() {}\n"}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Add("src/a.go", nil))
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount())
	path, ok := r.FileAt(0)
	require.True(t, ok)
	assert.Equal(t, "src/a.go", path)

	id, ok := r.FileDocID(0)
	require.True(t, ok)
	assert.Greater(t, r.State().TermFrequency(schema.FieldContents, "needle", id), 0)
}

func TestWriterAddOnUnreadableFileIsRecoveredNotFatal(t *testing.T) {
	files := fakeFiles{}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)

	assert.NoError(t, w.Add("missing.go", nil), "a per-file open/stat failure is recorded, not returned")
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	assert.Equal(t, 0, r.FileCount())
}

func TestWriterUpdateReplacesFileDocumentUnderNewID(t *testing.T) {
	files := fakeFiles{"a.go": "alpha"}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Add("a.go", nil))

	oldID, ok := w.findFileDoc("a.go")
	require.True(t, ok)

	files["a.go"] = "beta"
	require.NoError(t, w.Update("a.go", nil))

	newID, ok := w.findFileDoc("a.go")
	require.True(t, ok)
	assert.NotEqual(t, oldID, newID, "update replaces the document under a fresh DocID rather than mutating in place")

	require.NoError(t, w.Dispose())
	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount())
	assert.Equal(t, 0, r.State().TermFrequency(schema.FieldContents, "alpha", newID), "the old content is gone")
	assert.Greater(t, r.State().TermFrequency(schema.FieldContents, "beta", newID), 0, "the new content is indexed")
}

func TestWriterUpdateOfUnindexedPathBehavesLikeAdd(t *testing.T) {
	files := fakeFiles{"new.go": "gamma"}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Update("new.go", nil))
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	assert.Equal(t, 1, r.FileCount())
}

func TestWriterRemoveDeletesFileDocButKeepsTagDocs(t *testing.T) {
	files := fakeFiles{"a.go": "+#SEE#+[https://example.com/x]<caption>"}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Add("a.go", nil))
	require.NoError(t, w.Remove("a.go"))
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	assert.Equal(t, 0, r.FileCount(), "the file document is gone")

	info, ok := r.GetTagInfo("SEE")
	require.True(t, ok, "Remove deliberately leaves tag documents behind (documented rough edge)")
	require.Len(t, info.Links, 1)
	assert.Equal(t, "https://example.com/x", info.Links[0].URL)
}

func TestWriterAddCreatesTagDocumentOnlyWhenLinkHasURL(t *testing.T) {
	files := fakeFiles{
		"linked.go": "+#SEE#+[https://example.com]<doc>",
		"orphan.go": "+#TODO#+ fix this later",
	}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Add("linked.go", nil))
	require.NoError(t, w.Add("orphan.go", nil))
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)

	seeInfo, ok := r.GetTagInfo("SEE")
	require.True(t, ok)
	require.Len(t, seeInfo.Links, 1)

	todoInfo, ok := r.GetTagInfo("TODO")
	require.True(t, ok, "a tag without a link payload is still searchable via the Tags field and must be enumerable")
	assert.Empty(t, todoInfo.Links, "no tag document exists for a URL-less tag, so it carries no links")
	assert.Equal(t, 1, todoInfo.DocumentCount)
}

func TestWriterDisposeIsIdempotent(t *testing.T) {
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, fakeFiles{})
	require.NoError(t, err)
	require.NoError(t, w.Dispose())
	assert.NoError(t, w.Dispose())
}

func TestWriterAddAfterDisposeFails(t *testing.T) {
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, fakeFiles{"a.go": "x"})
	require.NoError(t, err)
	require.NoError(t, w.Dispose())
	assert.Error(t, w.Add("a.go", nil))
}

func TestWriterClearRemovesEveryDocument(t *testing.T) {
	files := fakeFiles{"a.go": "alpha", "b.go": "beta"}
	storage := store.NewMemoryStorage()
	w, err := OpenWriter(storage, files)
	require.NoError(t, err)
	require.NoError(t, w.Add("a.go", nil))
	require.NoError(t, w.Add("b.go", nil))
	require.NoError(t, w.Clear())
	require.NoError(t, w.Dispose())

	r, err := OpenReader(storage, files)
	require.NoError(t, err)
	assert.Equal(t, 0, r.FileCount())
}
