package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVExporter writes the ratio table as comma-separated values.
type CSVExporter struct{}

// Format returns the exporter name.
func (e *CSVExporter) Format() string { return "csv" }

// ContentType returns the MIME type of the export.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export writes the header and one record per ratio.
func (e *CSVExporter) Export(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(marshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSVRows reads back the rows of a file written by CSVExporter.
func ReadCSVRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ratios CSV: %w", err)
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
