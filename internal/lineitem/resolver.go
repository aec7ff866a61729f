package lineitem

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/model"
)

// MissingLineItemDefault is returned when no row matches a key, or the
// matched row lacks the requested column. A missing account is read as a
// zero balance and flows into the ratios like any other value.
var MissingLineItemDefault = decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}

// Resolve returns the amount in column of the first row whose name contains
// key, ignoring case. Accents are compared as-is: "TESORERÍA" does not match
// "TESORERIA".
func Resolve(table model.LineItemTable, key string, column model.Column) decimal.NullDecimal {
	v, _ := lookup(table, key, column)
	return v
}

// lookup is Resolve plus whether a row matched.
func lookup(table model.LineItemTable, key string, column model.Column) (decimal.NullDecimal, bool) {
	needle := strings.ToUpper(key)
	for _, row := range table.Rows {
		if !strings.Contains(strings.ToUpper(row.Name), needle) {
			continue
		}
		amount, ok := row.Amount(column)
		if !ok {
			return MissingLineItemDefault, true
		}
		return amount, true
	}
	return MissingLineItemDefault, false
}
