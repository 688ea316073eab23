package schema

import "fmt"

// FieldValue is one field's raw value on a Document, prior to analysis.
// Exactly one of Text/Int64 is meaningful, selected by Numeric.
type FieldValue struct {
	Name    FieldName
	Text    string
	Int64   int64
	Numeric bool
}

// Document is an unstored bag of field values — either a file document or
// a tag document, distinguished by which fields it carries (§3 "two
// disjoint document populations").
type Document struct {
	Fields []FieldValue
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// SetText sets (or replaces) a text field value.
func (d *Document) SetText(name FieldName, text string) *Document {
	d.remove(name)
	d.Fields = append(d.Fields, FieldValue{Name: name, Text: text})
	return d
}

// SetInt64 sets (or replaces) a numeric field value.
func (d *Document) SetInt64(name FieldName, v int64) *Document {
	d.remove(name)
	d.Fields = append(d.Fields, FieldValue{Name: name, Int64: v, Numeric: true})
	return d
}

func (d *Document) remove(name FieldName) {
	out := d.Fields[:0]
	for _, f := range d.Fields {
		if f.Name != name {
			out = append(out, f)
		}
	}
	d.Fields = out
}

// Get returns the value of a field, if present.
func (d *Document) Get(name FieldName) (FieldValue, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldValue{}, false
}

// Text returns a text field's value, or "" if absent/numeric.
func (d *Document) Text(name FieldName) string {
	if fv, ok := d.Get(name); ok {
		return fv.Text
	}
	return ""
}

// Int64 returns a numeric field's value, or 0 if absent/non-numeric.
func (d *Document) Int64(name FieldName) int64 {
	if fv, ok := d.Get(name); ok && fv.Numeric {
		return fv.Int64
	}
	return 0
}

// IsTagDocument reports whether d carries the Tag field — the
// discriminator between the two document populations (§4.3 "File-vs-tag
// doc separation").
func (d *Document) IsTagDocument() bool {
	_, ok := d.Get(FieldTag)
	return ok
}

// NewFileDocument builds a file document with the four mandatory scalar
// fields populated; content/tag fields are added separately by the writer
// as it analyzes each reader.
func NewFileDocument(path, extension string, modified int64, size int64) *Document {
	d := NewDocument()
	d.SetText(FieldPath, path)
	d.SetText(FieldExtension, extension)
	d.SetInt64(FieldModified, modified)
	d.SetInt64(FieldSize, size)
	return d
}

// NewTagDocument builds one tag document for a single tag occurrence's
// link (§3 "A single source file produces one file document plus N tag
// documents (one per tag occurrence's link set)").
func NewTagDocument(tagName, sourcePath, url, caption string) *Document {
	d := NewDocument()
	d.SetText(FieldTag, tagName)
	d.SetText(FieldTagSourcePath, sourcePath)
	d.SetText(FieldURL, url)
	d.SetText(FieldCaption, caption)
	return d
}

func (d *Document) String() string {
	if d.IsTagDocument() {
		return fmt.Sprintf("TagDocument{Tag:%q Source:%q Url:%q}", d.Text(FieldTag), d.Text(FieldTagSourcePath), d.Text(FieldURL))
	}
	return fmt.Sprintf("FileDocument{Path:%q}", d.Text(FieldPath))
}
