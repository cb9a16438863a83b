// Package structure infers a title/section/subsection tree from a flat
// stream of styled paragraphs and attaches tables to it.
package structure

import (
	"strings"

	"github.com/dgallion1/wordjson/internal/doctree"
)

// Paragraph is a single body paragraph and the name of its style.
type Paragraph struct {
	Text  string
	Style string
}

// Source is everything the builder needs from a loaded document.
type Source struct {
	Paragraphs []Paragraph
	Tables     []Table
}

// Stats counts input that did not land in the tree.
type Stats struct {
	Paragraphs    int // Non-empty paragraphs seen
	DroppedLines  int // Lines that arrived before any section was open
	Tables        int
	DroppedTables int // Tables seen while no section existed
}

const none = -1

// Builder is the single-pass state machine behind Build. Sections live in an
// arena and the open section/subsection are tracked as indices into it.
type Builder struct {
	title      string
	sections   []doctree.Section
	section    int
	subsection int
	stats      Stats
}

func NewBuilder() *Builder {
	return &Builder{section: none, subsection: none}
}

// Add routes one paragraph into the tree.
func (b *Builder) Add(p Paragraph) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return
	}
	b.stats.Paragraphs++

	kind := Classify(p.Style)
	if b.title == "" && (kind == Title || kind == Heading1) {
		b.title = text
		return
	}

	switch {
	case kind == Heading1:
		b.sections = append(b.sections, doctree.NewSection(text))
		b.section = len(b.sections) - 1
		b.subsection = none
	case kind == Heading2 && b.section != none:
		sec := &b.sections[b.section]
		sec.Subsections = append(sec.Subsections, doctree.NewSubsection(text))
		b.subsection = len(sec.Subsections) - 1
	default:
		b.addLine(text)
	}
}

func (b *Builder) addLine(text string) {
	switch {
	case b.section == none:
		b.stats.DroppedLines++
	case b.subsection != none:
		sub := &b.sections[b.section].Subsections[b.subsection]
		sub.Content = append(sub.Content, text)
	default:
		sec := &b.sections[b.section]
		sec.Content = append(sec.Content, text)
	}
}

// AddTable extracts t and appends it to the last section. It is dropped when
// no section exists yet.
func (b *Builder) AddTable(t Table) {
	b.stats.Tables++
	if len(b.sections) == 0 {
		b.stats.DroppedTables++
		return
	}
	last := &b.sections[len(b.sections)-1]
	last.Tables = append(last.Tables, ExtractTable(t.Rows))
}

// Stats reports what the builder has consumed so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Document returns the tree built so far. The builder must not be used afterwards.
func (b *Builder) Document() *doctree.Document {
	doc := doctree.NewDocument()
	doc.Title = b.title
	if len(b.sections) > 0 {
		doc.Sections = b.sections
	}
	return doc
}

// Build runs every paragraph through the builder, then every table, so tables
// always land on the final section regardless of where they appeared.
func Build(paragraphs []Paragraph, tables []Table) *doctree.Document {
	doc, _ := BuildWithStats(paragraphs, tables)
	return doc
}

// BuildWithStats is Build that also reports dropped input.
func BuildWithStats(paragraphs []Paragraph, tables []Table) (*doctree.Document, Stats) {
	b := NewBuilder()
	for _, p := range paragraphs {
		b.Add(p)
	}
	for _, t := range tables {
		b.AddTable(t)
	}
	return b.Document(), b.Stats()
}
