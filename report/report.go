package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jung-kurt/gofpdf"
)

const (
	Title    = "Business Report"
	FileName = "Report.pdf"

	bodyFont  = "Helvetica"
	codeFont  = "Courier"
	bodySize  = 11.0
	codeSize  = 9.5
	margin    = 18.0
	listStep  = 6.0
	quoteStep = 5.0
)

var headingSizes = map[int]float64{1: 20, 2: 16, 3: 14, 4: 12, 5: 11, 6: 11}

// Document is the markdown source of the report for one answer.
func Document(answer string) string {
	return "# " + Title + "\n\n" + answer
}

// Render lays the answer out as an A4 PDF headed "Business Report".
func Render(answer string) ([]byte, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(Document(answer)), p)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, child := range doc.GetChildren() {
		r.block(child)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	indent float64
}

func lineHeight(size float64) float64 {
	return size * 0.5
}

func (r *renderer) setIndent(indent float64) {
	r.indent = indent
	r.pdf.SetLeftMargin(margin + indent)
	r.pdf.SetX(margin + indent)
}

func (r *renderer) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		size, ok := headingSizes[n.Level]
		if !ok {
			size = bodySize
		}
		r.pdf.Ln(2)
		r.inlines(n, "B", size)
		r.pdf.Ln(lineHeight(size) + 2)
	case *ast.Paragraph:
		r.inlines(n, "", bodySize)
		r.pdf.Ln(lineHeight(bodySize) + 2)
	case *ast.List:
		r.list(n)
		r.pdf.Ln(1)
	case *ast.CodeBlock:
		r.pdf.SetFont(codeFont, "", codeSize)
		r.pdf.SetFillColor(242, 242, 242)
		text := strings.TrimRight(string(n.Literal), "\n")
		r.pdf.MultiCell(0, lineHeight(codeSize), r.tr(text), "", "L", true)
		r.pdf.Ln(2)
	case *ast.BlockQuote:
		prev := r.indent
		r.setIndent(prev + quoteStep)
		r.pdf.SetTextColor(90, 90, 90)
		for _, child := range n.GetChildren() {
			r.block(child)
		}
		r.pdf.SetTextColor(0, 0, 0)
		r.setIndent(prev)
	case *ast.HorizontalRule:
		y := r.pdf.GetY() + 2
		w, _ := r.pdf.GetPageSize()
		r.pdf.Line(margin+r.indent, y, w-margin, y)
		r.pdf.Ln(5)
	case *ast.Table:
		r.table(n)
	default:
		r.inlines(n, "", bodySize)
		r.pdf.Ln(lineHeight(bodySize) + 2)
	}
}

func (r *renderer) list(l *ast.List) {
	ordered := l.ListFlags&ast.ListTypeOrdered != 0
	number := l.Start
	if number == 0 {
		number = 1
	}

	prev := r.indent
	for _, item := range l.GetChildren() {
		r.setIndent(prev)
		r.pdf.SetFont(bodyFont, "", bodySize)
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", number)
			number++
		}
		r.pdf.CellFormat(listStep, lineHeight(bodySize), marker, "", 0, "L", false, 0, "")
		r.setIndent(prev + listStep)
		r.pdf.SetX(margin + prev + listStep)

		for i, child := range item.GetChildren() {
			switch child := child.(type) {
			case *ast.Paragraph:
				if i > 0 {
					r.pdf.SetX(margin + r.indent)
				}
				r.inlines(child, "", bodySize)
				r.pdf.Ln(lineHeight(bodySize))
			case *ast.List:
				r.list(child)
			default:
				r.block(child)
			}
		}
	}
	r.setIndent(prev)
}

func (r *renderer) table(t *ast.Table) {
	r.pdf.SetFont(bodyFont, "", bodySize-1)
	ast.WalkFunc(t, func(node ast.Node, entering bool) ast.WalkStatus {
		row, ok := node.(*ast.TableRow)
		if !ok || !entering {
			return ast.GoToNext
		}
		cells := make([]string, 0, len(row.GetChildren()))
		header := false
		for _, c := range row.GetChildren() {
			if cell, ok := c.(*ast.TableCell); ok && cell.IsHeader {
				header = true
			}
			cells = append(cells, plainText(c))
		}
		style := ""
		if header {
			style = "B"
		}
		r.pdf.SetFont(bodyFont, style, bodySize-1)
		r.pdf.MultiCell(0, lineHeight(bodySize), r.tr(strings.Join(cells, "  |  ")), "B", "L", false)
		return ast.SkipChildren
	})
	r.pdf.Ln(2)
}

func (r *renderer) inlines(n ast.Node, style string, size float64) {
	for _, child := range n.GetChildren() {
		r.inline(child, style, size)
	}
}

func (r *renderer) inline(n ast.Node, style string, size float64) {
	switch n := n.(type) {
	case *ast.Text:
		r.write(bodyFont, style, size, flatten(string(n.Literal)))
	case *ast.Code:
		r.write(codeFont, "", size-1, string(n.Literal))
	case *ast.Softbreak:
		r.write(bodyFont, style, size, " ")
	case *ast.Hardbreak:
		r.pdf.Ln(lineHeight(size))
		r.pdf.SetX(margin + r.indent)
	case *ast.Emph:
		r.inlines(n, withStyle(style, "I"), size)
	case *ast.Strong:
		r.inlines(n, withStyle(style, "B"), size)
	case *ast.HTMLSpan:
		r.write(bodyFont, style, size, string(n.Literal))
	default:
		if leaf := n.AsLeaf(); leaf != nil && len(leaf.Literal) > 0 {
			r.write(bodyFont, style, size, flatten(string(leaf.Literal)))
		}
		r.inlines(n, style, size)
	}
}

func (r *renderer) write(family, style string, size float64, text string) {
	if text == "" {
		return
	}
	r.pdf.SetFont(family, style, size)
	r.pdf.Write(lineHeight(size), r.tr(text))
}

func withStyle(style, add string) string {
	if strings.Contains(style, add) {
		return style
	}
	// gofpdf accepts the letters in any order
	return style + add
}

func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func plainText(n ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(n, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if leaf := node.AsLeaf(); leaf != nil {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return flatten(b.String())
}
