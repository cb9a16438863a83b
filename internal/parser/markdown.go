package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/wordjson/internal/structure"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings map to
// "Heading n" styles and GFM tables become tables.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*structure.Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	out := &structure.Source{}
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				out.Paragraphs = append(out.Paragraphs, structure.Paragraph{
					Text:  inlineText(node, src),
					Style: headingStyle(node.Level),
				})
			case *east.Table:
				out.Tables = append(out.Tables, markdownTable(node, src))
			case *ast.List, *ast.ListItem, *ast.Blockquote:
				walk(node)
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				out.Paragraphs = append(out.Paragraphs, body(blockLines(node, src)))
			case *ast.Paragraph, *ast.TextBlock:
				out.Paragraphs = append(out.Paragraphs, body(inlineText(node, src)))
			}
		}
	}
	walk(doc)

	return out, nil
}

func body(s string) structure.Paragraph {
	return structure.Paragraph{Text: s, Style: normalStyle}
}

func markdownTable(tbl *east.Table, src []byte) structure.Table {
	var rows [][]string
	for r := tbl.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*east.TableCell); ok {
				cells = append(cells, inlineText(c, src))
			}
		}
		rows = append(rows, cells)
	}
	return structure.Table{Rows: rows}
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// blockLines returns the raw source lines of a code block.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimSpace(buf.String())
}
