package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of Office Open XML workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultSheetName names the single worksheet of an xlsx export.
const DefaultSheetName = "Ratios 2024"

const (
	colRatio   = 0
	colValue   = 1
	colBand    = 2
	colComment = 3
	numFields  = 4
)

// XLSXExporter writes a single-sheet workbook.
type XLSXExporter struct {
	SheetName string
}

// Format returns the exporter name.
func (e *XLSXExporter) Format() string { return "xlsx" }

// ContentType returns the MIME type of the export.
func (e *XLSXExporter) ContentType() string { return XLSXContentType }

func (e *XLSXExporter) sheet() string {
	if e.SheetName == "" {
		return DefaultSheetName
	}
	return e.SheetName
}

// Export writes the header and one row per ratio. Defined values are
// numeric cells; undefined ones are the text NotAvailable.
func (e *XLSXExporter) Export(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.sheet()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		if err := writeXLSXRow(f, sheet, r, row); err != nil {
			return fmt.Errorf("writing row %d: %w", r, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, sheet string, r int, row Row) error {
	cell := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(col+1, r)
		return name
	}
	if err := f.SetCellStr(sheet, cell(colRatio), row.Ratio); err != nil {
		return err
	}
	if v, err := decimal.NewFromString(row.Value); err == nil {
		if err := f.SetCellFloat(sheet, cell(colValue), v.InexactFloat64(), -1, 64); err != nil {
			return err
		}
	} else if err := f.SetCellStr(sheet, cell(colValue), row.Value); err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, cell(colBand), row.Band); err != nil {
		return err
	}
	return f.SetCellStr(sheet, cell(colComment), row.Comment)
}

// ReadXLSXRows reads back the rows of a workbook written by XLSXExporter.
func ReadXLSXRows(r io.Reader, sheetName string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	records, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// marshalRow converts a Row to a record in Header order.
func marshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colRatio] = row.Ratio
	rec[colValue] = row.Value
	rec[colBand] = row.Band
	rec[colComment] = row.Comment
	return rec
}

// unmarshalRow converts a record to a Row. Numeric values are normalized to
// their shortest decimal form.
func unmarshalRow(rec []string) (Row, error) {
	if len(rec) > numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}
	// Sheets drop trailing empty cells.
	for len(rec) < numFields {
		rec = append(rec, "")
	}
	value := rec[colValue]
	if v, err := decimal.NewFromString(value); err == nil {
		value = v.String()
	}
	return Row{
		Ratio:   rec[colRatio],
		Value:   value,
		Band:    rec[colBand],
		Comment: rec[colComment],
	}, nil
}
