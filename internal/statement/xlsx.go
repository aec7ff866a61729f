package statement

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ratios/internal/model"
)

// XLSXParser reads statements from Excel workbooks.
type XLSXParser struct {
	layout Layout
}

// NewXLSXParser creates a parser for workbooks laid out as described.
func NewXLSXParser(layout Layout) *XLSXParser {
	return &XLSXParser{layout: layout}
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// ParseBalance reads the asset and liability sheets of a balance sheet workbook.
func (p *XLSXParser) ParseBalance(r io.Reader) (model.LineItemTable, model.LineItemTable, error) {
	f, err := openWorkbook(DocumentBalance, r)
	if err != nil {
		return model.LineItemTable{}, model.LineItemTable{}, err
	}
	defer f.Close()

	assets, err := p.readSheet(f, DocumentBalance, p.layout.AssetsSheet, model.SectionAssets)
	if err != nil {
		return model.LineItemTable{}, model.LineItemTable{}, err
	}
	liabilities, err := p.readSheet(f, DocumentBalance, p.layout.LiabilitiesSheet, model.SectionLiabilities)
	if err != nil {
		return model.LineItemTable{}, model.LineItemTable{}, err
	}
	return assets, liabilities, nil
}

// ParseIncome reads the income statement sheet.
func (p *XLSXParser) ParseIncome(r io.Reader) (model.LineItemTable, error) {
	f, err := openWorkbook(DocumentIncome, r)
	if err != nil {
		return model.LineItemTable{}, err
	}
	defer f.Close()

	return p.readSheet(f, DocumentIncome, p.layout.IncomeSheet, model.SectionIncome)
}

func openWorkbook(doc string, r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &MalformedDocumentError{Document: doc, Reason: "not a readable xlsx workbook", Err: err}
	}
	return f, nil
}

func (p *XLSXParser) readSheet(f *excelize.File, doc, sheet string, section model.Section) (model.LineItemTable, error) {
	sheets := f.GetSheetList()
	if !slices.Contains(sheets, sheet) {
		return model.LineItemTable{}, &MalformedDocumentError{
			Document:   doc,
			Sheet:      sheet,
			Reason:     "sheet not found",
			Suggestion: closestSheet(sheet, sheets),
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.LineItemTable{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	// The first non-blank row after the skipped titles is the column header.
	var region [][]string
	if len(rows) > p.layout.SkipRows {
		region = rows[p.layout.SkipRows:]
	}
	for len(region) > 0 && blank(region[0]) {
		region = region[1:]
	}
	want := sectionColumns(section)
	if got := width(region); got != want {
		return model.LineItemTable{}, &MalformedDocumentError{
			Document: doc,
			Sheet:    sheet,
			Reason:   fmt.Sprintf("expected %d columns, found %d", want, got),
		}
	}

	table := model.LineItemTable{Section: section}
	for _, rec := range region[1:] {
		if blank(rec) {
			continue
		}
		table.Rows = append(table.Rows, parseRow(rec, want-1))
	}
	return table, nil
}

// parseRow converts a sheet row into an AccountRow with n amount columns.
func parseRow(rec []string, n int) model.AccountRow {
	row := model.AccountRow{Amounts: make([]decimal.NullDecimal, n)}
	if len(rec) > 0 {
		row.Name = rec[0]
	}
	for i := 0; i < n; i++ {
		if i+1 < len(rec) {
			row.Amounts[i] = parseAmount(rec[i+1])
		}
	}
	return row
}

// parseAmount reads a numeric cell. Blank and non-numeric cells are invalid.
func parseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// width returns the number of used columns in a block of rows.
func width(rows [][]string) int {
	w := 0
	for _, rec := range rows {
		n := len(rec)
		for n > 0 && strings.TrimSpace(rec[n-1]) == "" {
			n--
		}
		if n > w {
			w = n
		}
	}
	return w
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
