package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFExporter writes the ratio table as an A4 report.
type PDFExporter struct {
	Title string
}

// Format returns the exporter name.
func (e *PDFExporter) Format() string { return "pdf" }

// ContentType returns the MIME type of the export.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Column widths in mm; they add up to the printable A4 width.
var pdfWidths = []float64{52, 22, 28, 88}

const (
	pdfLineHeight  = 4
	pdfCellPadding = 1
)

// Export renders the table. Core PDF fonts have no emoji, so the band
// column drops the glyph.
func (e *PDFExporter) Export(w io.Writer, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := e.Title
	if title == "" {
		title = DefaultSheetName
	}
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range Header {
		pdf.CellFormat(pdfWidths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	_, pageHeight := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	for _, row := range rows {
		rec := marshalRow(row)
		rec[colBand] = bandName(row.Band)

		// Cells wrap instead of truncating; the row is as tall as its
		// longest cell.
		cells := make([][]string, len(rec))
		lines := 1
		for i, v := range rec {
			cells[i] = wrap(pdf, tr(v), pdfWidths[i])
			lines = max(lines, len(cells[i]))
		}
		height := float64(lines)*pdfLineHeight + 2*pdfCellPadding
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}

		x, y := left, pdf.GetY()
		for i, text := range cells {
			align := "L"
			if i == colValue {
				align = "R"
			}
			pdf.Rect(x, y, pdfWidths[i], height, "D")
			pdf.SetXY(x, y+pdfCellPadding)
			pdf.MultiCell(pdfWidths[i], pdfLineHeight, strings.Join(text, "\n"), "", align, false)
			x += pdfWidths[i]
		}
		pdf.SetXY(left, y+height)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// bandName strips the glyph from a BandLabel.
func bandName(label string) string {
	if i := strings.LastIndex(label, " "); i >= 0 {
		return label[i+1:]
	}
	return label
}

// wrap splits already translated text into the lines MultiCell prints in a
// cell of width mm with the current font.
func wrap(pdf *fpdf.Fpdf, s string, width float64) []string {
	var lines []string
	for _, l := range pdf.SplitLines([]byte(s), width) {
		lines = append(lines, string(l))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
