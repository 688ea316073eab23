package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codexdex/internal/schema"
	"github.com/standardbeagle/codexdex/internal/store"
	"github.com/standardbeagle/codexdex/internal/tokenize"
)

// Reader is an immutable snapshot of a committed index generation (§2
// item 6, §4.3). It may be shared across goroutines read-only; it never
// observes writes committed after it was opened (§5 "a reader and writer
// over the same path coexist only with the reader viewing the pre-commit
// snapshot").
//
// Note on the "dense file index" algorithm of §4.3: that algorithm exists
// in the original design to paper over Lucene-style tombstoned doc ids
// interleaved with a second document population in one physical segment.
// This engine's store.IndexState never retains tombstones — DeleteDoc
// removes an entry and its postings outright (see store/state.go) — so
// file documents and tag documents are simply two disjoint subsets of one
// map, and a stable `[0..file_count)` ordering only requires sorting file
// doc ids once, without a run-length gap table or a "<deleted>" sentinel.
// This is recorded as a deliberate simplification in DESIGN.md's Open
// Question Log; the externally visible contract (files is dense,
// zero-indexed, and tag documents never leak through it) is identical.
type Reader struct {
	state   *store.IndexState
	storage store.Storage
	files   FileProvider
	fileIDs []store.DocID
}

// OpenReader opens the most recently committed generation of storage as a
// read-only snapshot.
func OpenReader(storage store.Storage, files FileProvider) (*Reader, error) {
	if files == nil {
		files = DefaultFileProvider
	}
	state, err := storage.LoadLatest()
	if err != nil {
		return nil, fmt.Errorf("index: load current generation: %w", err)
	}
	r := &Reader{state: state, storage: storage, files: files}
	for id, doc := range state.Docs {
		if !doc.IsTag {
			r.fileIDs = append(r.fileIDs, id)
		}
	}
	sort.Slice(r.fileIDs, func(i, j int) bool { return r.fileIDs[i] < r.fileIDs[j] })
	return r, nil
}

// Storage exposes the backing store so callers can build a searcher or a
// writer against the same directory.
func (r *Reader) Storage() store.Storage { return r.storage }

// FileProvider exposes the reader's file provider, e.g. for the
// highlighter to open source files.
func (r *Reader) FileProvider() FileProvider { return r.files }

// State exposes the underlying index state read-only, for the search and
// highlight packages (which are not part of package index, to avoid an
// import cycle with their own dependency on *Reader).
func (r *Reader) State() *store.IndexState { return r.state }

// FileCount returns the number of live file documents.
func (r *Reader) FileCount() int { return len(r.fileIDs) }

// FileAt returns the Path of the i'th live file document in stable,
// zero-based order, or ok=false if i is out of range.
func (r *Reader) FileAt(i int) (string, bool) {
	if i < 0 || i >= len(r.fileIDs) {
		return "", false
	}
	doc := r.state.Docs[r.fileIDs[i]]
	return doc.Path, true
}

// FileDocID returns the DocID backing FileAt(i), used by the searcher to
// map scored documents back into this dense index space.
func (r *Reader) FileDocID(i int) (store.DocID, bool) {
	if i < 0 || i >= len(r.fileIDs) {
		return 0, false
	}
	return r.fileIDs[i], true
}

// IndexOfDoc returns the dense index of a file DocID, if it is a live
// file document.
func (r *Reader) IndexOfDoc(id store.DocID) (int, bool) {
	i := sort.Search(len(r.fileIDs), func(i int) bool { return r.fileIDs[i] >= id })
	if i < len(r.fileIDs) && r.fileIDs[i] == id {
		return i, true
	}
	return 0, false
}

// Files returns every live file document's Path, in stable order.
func (r *Reader) Files() []string {
	out := make([]string, len(r.fileIDs))
	for i, id := range r.fileIDs {
		out[i] = r.state.Docs[id].Path
	}
	return out
}

// FileTypes returns the distinct extension values among live file
// documents, falling back to deriving the extension from Path when the
// Extension field is empty (§4.3 "falls back to deriving extensions from
// Path values if the field is absent (older indexes)").
func (r *Reader) FileTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range r.fileIDs {
		doc := r.state.Docs[id]
		ext := doc.Extension
		if ext == "" {
			ext = strings.ToLower(filepath.Ext(doc.Path))
		}
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// TagInfo reports aggregate information about one tag name (§4.3).
type TagInfo struct {
	Name          string
	TotalCount    int
	DocumentCount int
	Links         []tokenize.TagLink
}

// GetTagInfo returns aggregate information for one tag name, or
// ok=false if the tag was never indexed. Existence is decided from the
// Tags content field, not the Tag tag-document field: a tag written
// without a link payload produces no tag document at all (§4.2 "Tags
// without payload produce no tag document but are searchable via the
// Tags field"), so the Tag field alone would make such tags invisible
// here even though they are live and searchable.
func (r *Reader) GetTagInfo(name string) (TagInfo, bool) {
	if r.state.TermPostings(schema.FieldTags, name) == nil {
		return TagInfo{}, false
	}
	return r.tagInfo(name), true
}

// Tags enumerates every distinct tag name's aggregate information,
// derived from the Tags term dictionary (name universe and occurrence
// counts) plus the Tag tag documents (link targets) (§4.3).
func (r *Reader) Tags() []TagInfo {
	names := r.state.Terms(schema.FieldTags)
	sort.Strings(names)
	out := make([]TagInfo, 0, len(names))
	for _, name := range names {
		out = append(out, r.tagInfo(name))
	}
	return out
}

func (r *Reader) tagInfo(name string) TagInfo {
	total := 0
	docCount := 0
	for _, id := range r.fileIDs {
		freq := r.state.TermFrequency(schema.FieldTags, name, id)
		if freq > 0 {
			total += freq
			docCount++
		}
	}
	var links []tokenize.TagLink
	for _, p := range r.state.TermPostings(schema.FieldTag, name) {
		doc, ok := r.state.Docs[p.Doc]
		if !ok || !doc.IsTag {
			continue
		}
		links = append(links, tokenize.TagLink{URL: doc.URL, Caption: doc.Caption})
	}
	return TagInfo{Name: name, TotalCount: total, DocumentCount: docCount, Links: links}
}

// Stats summarizes the reader's snapshot for health/diagnostic reporting
// — a small ambient surface mirroring the teacher's habit of exposing
// atomic counters off its MasterIndex (standardbeagle-lci/internal/indexing/master_index.go).
type Stats struct {
	FileDocCount int
	TagDocCount  int
}

// Stats returns document-count statistics for this snapshot.
func (r *Reader) Stats() Stats {
	s := Stats{FileDocCount: len(r.fileIDs)}
	for _, doc := range r.state.Docs {
		if doc.IsTag {
			s.TagDocCount++
		}
	}
	return s
}
