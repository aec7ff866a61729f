package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/model"
)

// NotAvailable marks an undefined ratio in tables and exports.
const NotAvailable = "N/A"

// ValuePlaces is the number of decimals shown and exported.
const ValuePlaces = 4

// Header is the column header shared by every export format.
var Header = []string{"Ratio", "Value", "Band", "Comment"}

// Row is one line of the ratio table as displayed and exported.
type Row struct {
	Ratio   string `json:"ratio"`
	Value   string `json:"value"`
	Band    string `json:"band"`
	Comment string `json:"comment"`
}

// BuildRows formats results for display, keeping their order.
func BuildRows(results []model.RatioResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{
			Ratio:   r.Name.Label(),
			Value:   FormatValue(r.Value),
			Band:    BandLabel(r.Band),
			Comment: r.Comment,
		})
	}
	return rows
}

// FormatValue rounds a ratio to ValuePlaces decimals, or returns NotAvailable.
func FormatValue(v decimal.NullDecimal) string {
	if !v.Valid {
		return NotAvailable
	}
	return v.Decimal.Round(ValuePlaces).String()
}

// BandLabel returns the glyph and name of a band, e.g. "🟢 GOOD".
func BandLabel(b model.Band) string {
	return b.Glyph() + " " + string(b)
}
