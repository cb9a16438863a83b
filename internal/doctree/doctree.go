package doctree

import (
	"bytes"
	"encoding/json"
)

// Document is the root of an extracted document.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is opened by a "Heading 1" paragraph.
type Section struct {
	Title       string           `json:"title"`
	Content     []string         `json:"content"`     // Lines before the first subsection
	Subsections []Subsection     `json:"subsections"` // Opened by "Heading 2" paragraphs
	Tables      []TableRecordSet `json:"tables"`
}

// Subsection is opened by a "Heading 2" paragraph inside a Section.
type Subsection struct {
	Title   string           `json:"title"`
	Content []string         `json:"content"`
	Tables  []TableRecordSet `json:"tables"` // Never populated; tables attach to sections
}

// TableRecordSet is one table re-expressed as one Record per data row.
type TableRecordSet []Record

// NewDocument returns an empty document that serializes sections as [].
func NewDocument() *Document {
	return &Document{Sections: []Section{}}
}

// NewSection returns a section with empty, non-nil collections.
func NewSection(title string) Section {
	return Section{
		Title:       title,
		Content:     []string{},
		Subsections: []Subsection{},
		Tables:      []TableRecordSet{},
	}
}

// NewSubsection returns a subsection with empty, non-nil collections.
func NewSubsection(title string) Subsection {
	return Subsection{
		Title:   title,
		Content: []string{},
		Tables:  []TableRecordSet{},
	}
}

// Field is one header/cell pair of a Record.
type Field struct {
	Key   string
	Value string
}

// Record maps table headers to cell text, preserving header order.
type Record struct {
	fields []Field
}

// Set assigns value to key. An existing key keeps its position and takes the new value.
func (r *Record) Set(key, value string) {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the record's keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the record's fields in insertion order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

func (r Record) Len() int {
	return len(r.fields)
}

// MarshalJSON writes the record as a JSON object with keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, f.Key)
		buf.WriteByte(':')
		writeString(&buf, f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string. HTML escaping is left to the
// outer encoder.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	buf.Truncate(buf.Len() - 1)
}
