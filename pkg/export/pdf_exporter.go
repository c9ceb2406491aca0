package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 277.0
	rowHeight   = 7.0
	headerFont  = 10.0
	bodyFont    = 9.0
	titleHeight = 10.0
)

// PDFExporter renders datasets into a landscape grooming sheet.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType implements Renderer.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension implements Renderer.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates a PDF with title, subtitle and a bordered table. Headers repeat on each page.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)

	widths := columnWidths(pdf, data)
	writeHeader := func() {
		pdf.SetFont("Arial", "B", headerFont)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], rowHeight+1, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", bodyFont)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			writeHeader()
		}
	})

	pdf.AddPage()
	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, titleHeight, data.Title, "", 1, "L", false, 0, "")
	}
	if data.Subtitle != "" || !data.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "", 9)
		line := data.Subtitle
		if !data.GeneratedAt.IsZero() {
			line = fmt.Sprintf("%s  Generated %s", line, data.GeneratedAt.Format("2006-01-02 15:04 MST"))
		}
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	writeHeader()

	for _, row := range data.Rows {
		for i, value := range row {
			pdf.CellFormat(widths[i], rowHeight, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths sizes columns by their widest cell, scaled to the page.
func columnWidths(pdf *gofpdf.Fpdf, data Dataset) []float64 {
	pdf.SetFont("Arial", "B", headerFont)
	widths := make([]float64, len(data.Headers))
	for i, header := range data.Headers {
		widths[i] = pdf.GetStringWidth(header) + 4
	}
	pdf.SetFont("Arial", "", bodyFont)
	for _, row := range data.Rows {
		for i, value := range row {
			if w := pdf.GetStringWidth(value) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	for i := range widths {
		widths[i] = widths[i] / total * pageWidth
	}
	return widths
}
