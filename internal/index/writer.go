// Package index implements the index writer and reader (§4.2, §4.3): the
// single-writer mutation API over a store.Storage, and the immutable
// reader snapshot with its file/tag document disentanglement.
package index

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/codexdex/internal/analysis"
	"github.com/standardbeagle/codexdex/internal/errs"
	"github.com/standardbeagle/codexdex/internal/progress"
	"github.com/standardbeagle/codexdex/internal/schema"
	"github.com/standardbeagle/codexdex/internal/store"
	"github.com/standardbeagle/codexdex/internal/tokenize"
)

// Writer maintains the on-disk index under single-writer discipline
// (§4.2). Operations are applied to an in-memory working copy of the
// current generation and become visible to new readers only at Dispose
// (§5 Ordering guarantees).
type Writer struct {
	storage  store.Storage
	unlock   store.Unlock
	state    *store.IndexState
	files    FileProvider
	base     *analysis.SchemaAnalyzers
	disposed bool

	// OnProgress, if set, is called for every non-fatal per-file notice
	// (§6 "progress callbacks of shape (sender, message)"). It is always
	// also forwarded to the package-wide progress.Emit sink.
	OnProgress func(sender, message string)
}

// OpenWriter acquires the single-writer lock on storage and loads its
// current generation as the working state.
func OpenWriter(storage store.Storage, files FileProvider) (*Writer, error) {
	if files == nil {
		files = DefaultFileProvider
	}
	unlock, err := storage.Lock()
	if err != nil {
		return nil, errs.NewLockError("<index>", err)
	}
	state, err := storage.LoadLatest()
	if err != nil {
		_ = unlock()
		return nil, fmt.Errorf("index: load current generation: %w", err)
	}
	return &Writer{
		storage: storage,
		unlock:  unlock,
		state:   state,
		files:   files,
		base:    analysis.Default(),
	}, nil
}

func (w *Writer) notify(message string) {
	progress.Emit("writer", message)
	if w.OnProgress != nil {
		w.OnProgress("writer", message)
	}
}

func extensionOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// findFileDoc returns the live file document id for path, if any.
func (w *Writer) findFileDoc(path string) (store.DocID, bool) {
	for id, doc := range w.state.Docs {
		if !doc.IsTag && doc.Path == path {
			return id, true
		}
	}
	return 0, false
}

// findTagDocs returns every live tag document id sourced from path.
func (w *Writer) findTagDocs(path string) []store.DocID {
	var ids []store.DocID
	for id, doc := range w.state.Docs {
		if doc.IsTag && doc.TagSourcePath == path {
			ids = append(ids, id)
		}
	}
	return ids
}

// Add opens path, analyzes it under the schema (§3), and submits a new
// file document plus any tag documents its tag occurrences carry links
// for (§4.2 Tag collection protocol). tokenizer, if non-nil, replaces the
// default Contents* tokenizer for this file only.
func (w *Writer) Add(path string, tokenizer tokenize.Tokenizer) error {
	if w.disposed {
		return fmt.Errorf("index: writer is disposed")
	}
	stat, err := w.files.Stat(path)
	if err != nil {
		w.notify(fmt.Sprintf("stat failed for %s: %v", path, err))
		return nil
	}
	rc, err := w.files.Open(path)
	if err != nil {
		w.notify(fmt.Sprintf("open failed for %s: %v", path, err))
		return nil
	}
	content, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		w.notify(fmt.Sprintf("read failed for %s: %v", path, err))
		return nil
	}

	sa := w.base
	if tokenizer != nil {
		sa = w.base.WithContentsTokenizer(tokenizer)
	}

	docID := w.state.AllocDocID()
	w.state.Docs[docID] = &store.StoredDocument{
		Path:      path,
		Extension: extensionOf(path),
		Modified:  stat.ModTime.UnixNano(),
		Size:      stat.Size,
	}

	if err := w.indexTextField(sa.Path, schema.FieldPath, path, docID); err != nil {
		w.notify(fmt.Sprintf("index Path failed for %s: %v", path, err))
	}
	if err := w.indexTextField(sa.Extension, schema.FieldExtension, extensionOf(path), docID); err != nil {
		w.notify(fmt.Sprintf("index Extension failed for %s: %v", path, err))
	}
	if err := w.indexTextField(sa.Contents, schema.FieldContents, string(content), docID); err != nil {
		w.notify(fmt.Sprintf("index Contents failed for %s: %v", path, err))
	}
	if err := w.indexTextField(sa.ContentsCaseInsensitive, schema.FieldContentsCI, string(content), docID); err != nil {
		w.notify(fmt.Sprintf("index ContentsCaseInsensitive failed for %s: %v", path, err))
	}

	var collected []tokenize.Token
	unsubscribe := sa.TagTokenizer.Subscribe(func(tok tokenize.Token) {
		collected = append(collected, tok)
	})
	if err := w.indexTextField(sa.Tags, schema.FieldTags, string(content), docID); err != nil {
		w.notify(fmt.Sprintf("index Tags failed for %s: %v", path, err))
	}
	unsubscribe()
	if err := w.indexTextField(sa.TagsCaseInsensitive, schema.FieldTagsCI, string(content), docID); err != nil {
		w.notify(fmt.Sprintf("index TagsCaseInsensitive failed for %s: %v", path, err))
	}

	for _, tok := range collected {
		links, _ := tok.Data.([]tokenize.TagLink)
		for _, link := range links {
			if link.URL == "" {
				continue
			}
			tagDocID := w.state.AllocDocID()
			w.state.Docs[tagDocID] = &store.StoredDocument{
				IsTag:         true,
				Tag:           tok.Text,
				TagSourcePath: path,
				URL:           link.URL,
				Caption:       link.Caption,
			}
			w.state.AddPosting(schema.FieldTag, tok.Text, tagDocID, nil)
			w.state.AddPosting(schema.FieldTagSourcePath, path, tagDocID, nil)
		}
	}

	return nil
}

// indexTextField analyzes text with analyzer and posts one entry per
// distinct term to field's posting list for doc, carrying every
// occurrence of that term.
func (w *Writer) indexTextField(analyzer *analysis.Analyzer, field schema.FieldName, text string, doc store.DocID) error {
	if analyzer == nil {
		return nil
	}
	tokens, err := analyzer.Analyze([]byte(text))
	if err != nil {
		return err
	}
	perTerm := make(map[string][]store.Occurrence)
	var order []string
	for ordinal, tok := range tokens {
		if _, seen := perTerm[tok.Term]; !seen {
			order = append(order, tok.Term)
		}
		perTerm[tok.Term] = append(perTerm[tok.Term], store.Occurrence{
			Ordinal: ordinal,
			Start:   tok.Start,
			End:     tok.End,
		})
	}
	for _, term := range order {
		w.state.AddPosting(field, term, doc, perTerm[term])
	}
	return nil
}

// Update deletes any existing file document (and its tag documents) for
// path, then adds path afresh (§4.2 Update).
func (w *Writer) Update(path string, tokenizer tokenize.Tokenizer) error {
	if id, ok := w.findFileDoc(path); ok {
		w.state.DeleteDoc(id)
	}
	for _, id := range w.findTagDocs(path) {
		w.state.DeleteDoc(id)
	}
	return w.Add(path, tokenizer)
}

// Remove deletes the file document for path. It deliberately does not
// delete that file's tag documents — callers that want tag documents
// purged too must use Update, per the acknowledged rough edge of §4.2/§9:
// "remove(path) ... does not delete associated tag documents by design;
// this is an acknowledged rough edge."
func (w *Writer) Remove(path string) error {
	if id, ok := w.findFileDoc(path); ok {
		w.state.DeleteDoc(id)
	}
	return nil
}

// Clear deletes every document (§4.2).
func (w *Writer) Clear() error {
	w.state = store.NewIndexState()
	return nil
}

// Dispose commits the working state as the new current generation and
// releases the writer lock. It is safe to call exactly once.
func (w *Writer) Dispose() error {
	if w.disposed {
		return nil
	}
	w.disposed = true
	commitErr := w.storage.Commit(w.state)
	unlockErr := w.unlock()
	if commitErr != nil {
		return fmt.Errorf("index: commit: %w", commitErr)
	}
	if unlockErr != nil {
		return fmt.Errorf("index: release lock: %w", unlockErr)
	}
	return nil
}
