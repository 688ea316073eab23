// Package schema defines the fixed index schema (§3): the field
// descriptors, storage/indexing/termvector attributes, and the two
// document populations — file documents and tag documents — that share a
// single physical index.
//
// Grounded on standardbeagle-lci/internal/types/types.go for the "a handful
// of small value types plus one aggregate document-ish struct" shape the
// teacher uses for its FileInfo/SymbolInfo records, adapted here to the
// Lucene-style field-descriptor table this spec calls for instead of the
// teacher's flat struct fields.
package schema

// Storage controls whether a field's original value is retrievable from a
// stored document.
type Storage int

const (
	StorageNone Storage = iota
	StorageStored
)

// Indexing controls whether and how a field's value is tokenized and
// added to the inverted index.
type Indexing int

const (
	IndexingNone Indexing = iota
	IndexingAnalyzed
	IndexingAnalyzedNoNorms
	IndexingNotAnalyzedNoNorms
)

// TermVector controls whether a per-document, per-term positions+offsets
// vector is retained for a field (required by the occurrence highlighter).
type TermVector int

const (
	TermVectorNone TermVector = iota
	TermVectorPositionsOffsets
)

// FieldName identifies one of the fixed schema fields.
type FieldName string

const (
	FieldPath       FieldName = "Path"
	FieldExtension  FieldName = "Extension"
	FieldModified   FieldName = "Modified"
	FieldSize       FieldName = "Size"
	FieldContents   FieldName = "Contents"
	FieldContentsCI FieldName = "ContentsCaseInsensitive"
	FieldTags       FieldName = "Tags"
	FieldTagsCI     FieldName = "TagsCaseInsensitive"

	FieldTag           FieldName = "Tag"
	FieldTagSourcePath FieldName = "TagSourcePath"
	FieldURL           FieldName = "Url"
	FieldCaption       FieldName = "Caption"
)

// FieldDescriptor is the fixed {storage, indexing, termvector} triple
// bound to one field name, per the §3 schema table.
type FieldDescriptor struct {
	Name       FieldName
	Storage    Storage
	Indexing   Indexing
	TermVector TermVector
}

// FileFields are the fields carried by a file document.
var FileFields = []FieldDescriptor{
	{FieldPath, StorageStored, IndexingAnalyzedNoNorms, TermVectorNone},
	{FieldExtension, StorageStored, IndexingAnalyzedNoNorms, TermVectorNone},
	{FieldModified, StorageStored, IndexingNotAnalyzedNoNorms, TermVectorNone},
	{FieldSize, StorageStored, IndexingNotAnalyzedNoNorms, TermVectorNone},
	{FieldContents, StorageNone, IndexingAnalyzed, TermVectorPositionsOffsets},
	{FieldContentsCI, StorageNone, IndexingAnalyzed, TermVectorPositionsOffsets},
	{FieldTags, StorageNone, IndexingAnalyzed, TermVectorPositionsOffsets},
	{FieldTagsCI, StorageNone, IndexingAnalyzed, TermVectorPositionsOffsets},
}

// TagFields are the fields carried by a tag document.
var TagFields = []FieldDescriptor{
	{FieldTag, StorageNone, IndexingNotAnalyzedNoNorms, TermVectorNone},
	{FieldTagSourcePath, StorageNone, IndexingNotAnalyzedNoNorms, TermVectorNone},
	{FieldURL, StorageStored, IndexingNone, TermVectorNone},
	{FieldCaption, StorageStored, IndexingNone, TermVectorNone},
}

// Descriptor looks up a field descriptor by name across both field sets.
func Descriptor(name FieldName) (FieldDescriptor, bool) {
	for _, fd := range FileFields {
		if fd.Name == name {
			return fd, true
		}
	}
	for _, fd := range TagFields {
		if fd.Name == name {
			return fd, true
		}
	}
	return FieldDescriptor{}, false
}
