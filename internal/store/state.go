// Package store implements index persistence (§2 item 4, §3 Ownership):
// a directory of on-disk segments plus a single-writer lock file, and an
// in-memory variant for tests. A "segment" here is a complete, immutable
// snapshot of the index's documents and postings — the simplest structure
// that satisfies the glossary's "immutable on-disk slice of the index;
// multiple segments compose a live index" while keeping commit/read
// trivially correct, since the spec explicitly rules out update-in-place
// at the posting-list level (§1 Non-goals) and multi-writer concurrency
// (§5). Each commit writes one new segment and repoints the manifest at
// it; the previous segment is deleted only after the manifest has been
// repointed, so a crash between writing a segment and updating the
// manifest never corrupts the previously-committed snapshot.
//
// Grounded on standardbeagle-lci/internal/core/postings.go for the
// map[term]map[docID]... posting shape, and on
// standardbeagle-lci/internal/idcodec (base-63 id encoding) for the
// convention of giving on-disk artifacts short, content-derived names —
// adapted here to xxhash-derived segment filenames.
package store

import "github.com/standardbeagle/codexdex/internal/schema"

// DocID identifies one document (file or tag) within an index generation.
// IDs are assigned monotonically by the writer and are never reused or
// mutated in place; an update is a delete of the old DocID plus an add
// under a new one (§3 Lifecycle).
type DocID uint64

// Occurrence is one analyzed-token position within a document's field
// value: its 0-based ordinal among that field's tokens (for phrase
// queries) and its byte offsets in the original field text (for the
// highlighter). Every analyzed field's postings carry Occurrences, Path
// and Extension included; the tag-document fields (Tag, TagSourcePath)
// store postings with no Occurrences.
type Occurrence struct {
	Ordinal int
	Start   int
	End     int
}

// Posting is one term's appearance in one document's field.
type Posting struct {
	Doc         DocID
	Occurrences []Occurrence
}

// StoredDocument holds the subset of a document's fields marked
// StorageStored in the schema (§3), keyed loosely by document kind.
type StoredDocument struct {
	IsTag bool

	// File document stored fields.
	Path      string
	Extension string
	Modified  int64
	Size      int64

	// Tag document stored fields.
	Tag           string
	TagSourcePath string
	URL           string
	Caption       string
}

// postingKey identifies one (field, term) posting list.
type postingKey struct {
	Field schema.FieldName
	Term  string
}

// IndexState is the full, self-contained content of one segment: every
// live document's stored fields plus every analyzed field's posting
// lists. It is the unit of (de)serialization and the unit of commit.
type IndexState struct {
	NextDocID DocID
	Docs      map[DocID]*StoredDocument
	Postings  map[postingKey][]Posting
}

// NewIndexState returns an empty state, equivalent to a freshly created
// index (§8 "clear() followed by add(f) yields the same index state as
// opening fresh and adding f").
func NewIndexState() *IndexState {
	return &IndexState{
		Docs:     make(map[DocID]*StoredDocument),
		Postings: make(map[postingKey][]Posting),
	}
}

// Clone deep-copies the state so a writer can mutate a working copy
// without corrupting the snapshot concurrently visible to readers (§5
// "Readers see a point-in-time snapshot").
func (s *IndexState) Clone() *IndexState {
	out := &IndexState{
		NextDocID: s.NextDocID,
		Docs:      make(map[DocID]*StoredDocument, len(s.Docs)),
		Postings:  make(map[postingKey][]Posting, len(s.Postings)),
	}
	for id, doc := range s.Docs {
		d := *doc
		out.Docs[id] = &d
	}
	for k, postings := range s.Postings {
		cp := make([]Posting, len(postings))
		copy(cp, postings)
		out.Postings[k] = cp
	}
	return out
}

// AllocDocID returns the next unused document id and advances the
// counter.
func (s *IndexState) AllocDocID() DocID {
	id := s.NextDocID
	s.NextDocID++
	return id
}

// DeleteDoc removes a document and every posting that references it. Used
// by remove/update/clear (§4.2).
func (s *IndexState) DeleteDoc(id DocID) {
	if _, ok := s.Docs[id]; !ok {
		return
	}
	delete(s.Docs, id)
	for key, postings := range s.Postings {
		filtered := postings[:0]
		for _, p := range postings {
			if p.Doc != id {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			delete(s.Postings, key)
		} else {
			s.Postings[key] = filtered
		}
	}
}

// AddPosting appends one posting to the (field, term) list. It does not
// sort; the list stays ordered by DocID because callers add documents in
// increasing DocID order during a single writer session.
func (s *IndexState) AddPosting(field schema.FieldName, term string, doc DocID, occurrences []Occurrence) {
	key := postingKey{Field: field, Term: term}
	s.Postings[key] = append(s.Postings[key], Posting{Doc: doc, Occurrences: occurrences})
}

// TermPostings returns the posting list for (field, term), or nil.
func (s *IndexState) TermPostings(field schema.FieldName, term string) []Posting {
	return s.Postings[postingKey{Field: field, Term: term}]
}

// Terms returns every distinct term indexed for a field, unordered.
func (s *IndexState) Terms(field schema.FieldName) []string {
	var out []string
	for key := range s.Postings {
		if key.Field == field {
			out = append(out, key.Term)
		}
	}
	return out
}

// TermFrequency returns how many times term occurs in doc's field —
// the length of that posting's Occurrences, or 1 for fields with no
// termvector (not-analyzed fields post one occurrence-less entry per
// match). Used by the tag document-count/total-count aggregation (§4.3).
func (s *IndexState) TermFrequency(field schema.FieldName, term string, doc DocID) int {
	for _, p := range s.TermPostings(field, term) {
		if p.Doc == doc {
			if len(p.Occurrences) == 0 {
				return 1
			}
			return len(p.Occurrences)
		}
	}
	return 0
}
