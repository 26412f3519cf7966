package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ReportSection is one titled block of narrative text.
type ReportSection struct {
	Title string
	Body  string
}

// PDFExporter renders narrative reports into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderReport creates a PDF document with a title and a sequence of
// sections. Empty sections are skipped.
func (e *PDFExporter) RenderReport(title string, sections []ReportSection) ([]byte, error) {
	if title == "" {
		return nil, fmt.Errorf("pdf report requires a title")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range sections {
		body := strings.TrimSpace(section.Body)
		if body == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(body), "", "L", false)
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
