package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/wordjson/internal/structure"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*structure.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	// go-docx keeps only style ids; names live in word/styles.xml.
	styles, err := readStyles(data)
	if err != nil {
		return nil, fmt.Errorf("read styles: %w", err)
	}

	return docxSource(doc, styles), nil
}

// docxSource walks body-level items in document order. Paragraphs nested in
// table cells belong to the table, not to the paragraph stream.
func docxSource(doc *docx.Docx, styles *styleSheet) *structure.Source {
	src := &structure.Source{}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			src.Paragraphs = append(src.Paragraphs, structure.Paragraph{
				Text:  docxParagraphText(it),
				Style: styles.Name(docxStyleID(it)),
			})
		case *docx.Table:
			src.Tables = append(src.Tables, docxTable(it))
		}
	}
	return src
}

func docxStyleID(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxParagraphText renders runs the way Word shows them: hyperlink runs are
// included, tabs become "\t" and line breaks "\n". Page and column breaks
// contribute nothing.
func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&buf, c)
		case *docx.Hyperlink:
			writeRunText(&buf, &c.Run)
		}
	}
	return buf.String()
}

func writeRunText(buf *strings.Builder, run *docx.Run) {
	for _, rc := range run.Children {
		switch x := rc.(type) {
		case *docx.Text:
			buf.WriteString(x.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			if x.Type == "" || x.Type == "textWrapping" {
				buf.WriteByte('\n')
			}
		}
	}
}

// docxTable repeats a horizontally merged cell once per grid column it spans,
// so every row lines up with the header columns.
func docxTable(tbl *docx.Table) structure.Table {
	rows := make([][]string, 0, len(tbl.TableRows))
	for _, tr := range tbl.TableRows {
		cells := make([]string, 0, len(tr.TableCells))
		for _, tc := range tr.TableCells {
			text := docxCellText(tc)
			for range docxGridSpan(tc) {
				cells = append(cells, text)
			}
		}
		rows = append(rows, cells)
	}
	return structure.Table{Rows: rows}
}

func docxGridSpan(tc *docx.WTableCell) int {
	if p := tc.TableCellProperties; p != nil && p.GridSpan != nil && p.GridSpan.Val > 1 {
		return p.GridSpan.Val
	}
	return 1
}

// docxCellText joins the cell's paragraphs with newlines.
func docxCellText(tc *docx.WTableCell) string {
	parts := make([]string, 0, len(tc.Paragraphs))
	for _, p := range tc.Paragraphs {
		parts = append(parts, docxParagraphText(p))
	}
	return strings.Join(parts, "\n")
}
