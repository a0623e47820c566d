package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"cv-builder/resume/document"
)

// creationDate is stamped on every PDF so identical documents render to identical bytes.
var creationDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDF renders documents to PDF using fpdf core fonts.
type PDF struct {
	// Title is written to the PDF metadata. Defaults to "Curriculum Vitae".
	Title string
}

// NewPDF constructs a PDF renderer.
func NewPDF() *PDF {
	return &PDF{Title: "Curriculum Vitae"}
}

// Render lays doc onto A4 pages. Overflow flows onto new pages.
func (r *PDF) Render(ctx context.Context, doc document.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	pageSize := doc.PageSize
	if pageSize == "" {
		pageSize = document.PageSizeA4
	}
	margin := doc.Margin
	if margin <= 0 {
		margin = document.PageMargin
	}
	font := doc.Font
	if font == "" {
		font = document.DefaultFont
	}

	pdf := fpdf.New("P", "pt", pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(r.title(), true)
	pdf.SetCreator("cv-builder", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i, section := range doc.Sections {
		if section.Kind == document.SectionHeader {
			writeHeader(pdf, font, section, tr)
			continue
		}
		writeSection(pdf, font, section, i > 0, tr)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render: layout: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: output: %w", err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("render: empty output")
	}
	return buf.Bytes(), nil
}

func (r *PDF) title() string {
	if r == nil || r.Title == "" {
		return "Curriculum Vitae"
	}
	return r.Title
}

func writeHeader(pdf *fpdf.Fpdf, font string, section document.Section, tr func(string) string) {
	style := document.StyleMap["header"]
	pdf.SetFont(font, fontStyle(style), style.Size)
	for _, line := range section.Lines {
		pdf.CellFormat(0, style.Size+2, tr(line.Text), "", 1, "C", false, 0, "")
	}
	pdf.Ln(style.SpaceLine)
}

func writeSection(pdf *fpdf.Fpdf, font string, section document.Section, gap bool, tr func(string) string) {
	title := document.StyleMap["sectionTitle"]
	if gap {
		pdf.Ln(title.SpaceTop - title.SpaceLine)
	}
	if section.Title != "" {
		pdf.SetFont(font, fontStyle(title), title.Size)
		pdf.CellFormat(0, title.Size+2, tr(section.Title), "", 1, "L", false, 0, "")
		pdf.Ln(title.SpaceLine)
	}

	left, _, _, _ := pdf.GetMargins()
	for _, line := range section.Lines {
		style := document.StyleMap["text"]
		if line.Style == document.LineBullet {
			style = document.StyleMap["bullet"]
		}
		lineHeight := style.Size + style.SpaceLine + 2

		pdf.SetLeftMargin(left + style.Indent)
		pdf.SetX(left + style.Indent)
		if line.Lead != "" {
			pdf.SetFont(font, "B", style.Size)
			pdf.Write(lineHeight, tr(line.Lead))
		}
		pdf.SetFont(font, fontStyle(style), style.Size)
		pdf.Write(lineHeight, tr(line.Rest()))
		pdf.Ln(lineHeight)
		pdf.SetLeftMargin(left)

		if len(line.Details) > 0 {
			writeDetails(pdf, font, left, line.Details, tr)
		}
	}
}

func writeDetails(pdf *fpdf.Fpdf, font string, left float64, details []string, tr func(string) string) {
	style := document.StyleMap["bullet"]
	lineHeight := style.Size + style.SpaceLine + 2
	pdf.SetFont(font, fontStyle(style), style.Size)
	pdf.SetLeftMargin(left + style.Indent)
	for _, d := range details {
		pdf.SetX(left + style.Indent)
		pdf.Write(lineHeight, tr(d))
		pdf.Ln(lineHeight)
	}
	pdf.SetLeftMargin(left)
}

func fontStyle(style document.TextStyle) string {
	out := ""
	if style.Bold {
		out += "B"
	}
	if style.Underline {
		out += "U"
	}
	return out
}
