package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0
	pdfLineHeight = 5.0
)

// PDFExporter renders a Table as a landscape A4 timetable.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays the table out with a narrow first column for time slots.
// Cells holding several lines grow the row height.
func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if err := table.validate("pdf"); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(table.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(len(table.Headers))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(226, 232, 240)
	for i, header := range table.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		lines := 1
		for i := range table.Headers {
			if n := strings.Count(table.cell(row, i), "\n") + 1; n > lines {
				lines = n
			}
		}
		height := float64(lines) * pdfLineHeight
		if pdf.GetY()+height > 198 {
			pdf.AddPage()
		}

		x, y := pdf.GetXY()
		for i := range table.Headers {
			pdf.Rect(x, y, widths[i], height, "D")
			pdf.SetXY(x, y)
			pdf.MultiCell(widths[i], pdfLineHeight, tr(table.cell(row, i)), "", "L", false)
			x += widths[i]
		}
		pdf.SetXY(10, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(n int) []float64 {
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = pdfPageWidth
		return widths
	}
	first := 28.0
	widths[0] = first
	rest := (pdfPageWidth - first) / float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
