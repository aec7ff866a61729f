package model

import "github.com/shopspring/decimal"

// Column selects which amount of an AccountRow to read.
type Column int

const (
	ColumnCurrent Column = 0
	ColumnPrior   Column = 1
)

// String returns the column name used in logs and error messages.
func (c Column) String() string {
	switch c {
	case ColumnCurrent:
		return "current"
	case ColumnPrior:
		return "prior"
	default:
		return "unknown"
	}
}

// AccountRow is one line of a financial statement.
type AccountRow struct {
	Name    string
	Amounts []decimal.NullDecimal // indexed by Column; invalid = blank or non-numeric cell
}

// Amount returns the amount in column c and whether the row has that column.
func (r AccountRow) Amount(c Column) (decimal.NullDecimal, bool) {
	if c < 0 || int(c) >= len(r.Amounts) {
		return decimal.NullDecimal{}, false
	}
	return r.Amounts[c], true
}

// Section identifies the statement a LineItemTable was read from.
type Section string

const (
	SectionAssets      Section = "assets"
	SectionLiabilities Section = "liabilities"
	SectionIncome      Section = "income"
)

// LineItemTable is an ordered sequence of rows from one statement section.
// Order matters: lookups return the first matching row.
type LineItemTable struct {
	Section Section
	Rows    []AccountRow
}

// Statements holds the three tables read from the uploaded workbooks.
type Statements struct {
	Assets      LineItemTable
	Liabilities LineItemTable
	Income      LineItemTable
}
