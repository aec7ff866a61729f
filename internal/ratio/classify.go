package ratio

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/model"
)

const (
	commentUndefined     = "Not computable: a required line item is zero or missing."
	commentUninterpreted = "No interpretation defined for this indicator."
)

type direction int

const (
	higherIsBetter direction = iota
	lowerIsBetter
	targetRange // leverage: a band around [low, high] is good
)

// rule holds the two cut points of a ratio and its comment per band.
type rule struct {
	dir       direction
	low, high decimal.Decimal
	// outer cut points for targetRange.
	floor, ceiling decimal.Decimal
	comments       map[model.Band]string
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var rules = map[model.RatioName]rule{
	model.RatioCurrent: {
		dir: higherIsBetter, low: d("1.0"), high: d("1.5"),
		comments: map[model.Band]string{
			model.BandGood:     "Current assets comfortably cover short-term obligations.",
			model.BandWarning:  "Current assets cover short-term obligations with little margin.",
			model.BandCritical: "Current assets do not cover short-term obligations.",
		},
	},
	model.RatioQuick: {
		dir: higherIsBetter, low: d("0.8"), high: d("1.0"),
		comments: map[model.Band]string{
			model.BandGood:     "Obligations are covered without selling inventory.",
			model.BandWarning:  "Coverage without inventory is tight.",
			model.BandCritical: "Short-term solvency depends on selling inventory.",
		},
	},
	model.RatioCash: {
		dir: higherIsBetter, low: d("0.2"), high: d("0.5"),
		comments: map[model.Band]string{
			model.BandGood:     "Cash on hand covers a large share of current liabilities.",
			model.BandWarning:  "Cash covers part of current liabilities.",
			model.BandCritical: "Very little cash relative to current liabilities.",
		},
	},
	model.RatioTotalDebt: {
		dir: lowerIsBetter, low: d("1.0"), high: d("2.0"),
		comments: map[model.Band]string{
			model.BandGood:     "Liabilities are below equity; balanced financing.",
			model.BandWarning:  "Liabilities exceed equity; moderate indebtedness.",
			model.BandCritical: "Liabilities are more than twice equity; high indebtedness.",
		},
	},
	model.RatioInterestCoverage: {
		dir: higherIsBetter, low: d("1.5"), high: d("3.0"),
		comments: map[model.Band]string{
			model.BandGood:     "Operating income covers financial expenses with ease.",
			model.BandWarning:  "Operating income covers financial expenses with limited margin.",
			model.BandCritical: "Operating income barely covers financial expenses.",
		},
	},
	model.RatioReturnOnAssets: {
		dir: higherIsBetter, low: d("0.02"), high: d("0.05"),
		comments: map[model.Band]string{
			model.BandGood:     "Assets generate a healthy return.",
			model.BandWarning:  "Assets generate a modest return.",
			model.BandCritical: "Assets generate a poor or negative return.",
		},
	},
	model.RatioReturnOnSales: {
		dir: higherIsBetter, low: d("0.03"), high: d("0.07"),
		comments: map[model.Band]string{
			model.BandGood:     "Sales carry a healthy net margin.",
			model.BandWarning:  "Net margin on sales is thin.",
			model.BandCritical: "Sales barely produce profit, or produce losses.",
		},
	},
	model.RatioReturnOnCapital: {
		dir: higherIsBetter, low: d("0.05"), high: d("0.10"),
		comments: map[model.Band]string{
			model.BandGood:     "Long-term capital is employed efficiently.",
			model.BandWarning:  "Return on long-term capital is acceptable.",
			model.BandCritical: "Long-term capital earns a low return.",
		},
	},
	model.RatioInventoryTurnover: {
		dir: higherIsBetter, low: d("3"), high: d("5"),
		comments: map[model.Band]string{
			model.BandGood:     "Inventory rotates quickly.",
			model.BandWarning:  "Inventory rotates at a moderate pace.",
			model.BandCritical: "Inventory rotates slowly; risk of obsolete stock.",
		},
	},
	model.RatioDaysSales: {
		dir: lowerIsBetter, low: d("90"), high: d("120"),
		comments: map[model.Band]string{
			model.BandGood:     "Customers pay within a reasonable period.",
			model.BandWarning:  "Customer collection is slow.",
			model.BandCritical: "Customer collection is very slow; review credit policy.",
		},
	},
	model.RatioDaysPayables: {
		dir: lowerIsBetter, low: d("90"), high: d("120"),
		comments: map[model.Band]string{
			model.BandGood:     "Suppliers are paid within a reasonable period.",
			model.BandWarning:  "Supplier payments are stretched.",
			model.BandCritical: "Supplier payments are heavily delayed.",
		},
	},
	model.RatioCashConversionCycle: {
		dir: lowerIsBetter, low: d("60"), high: d("120"),
		comments: map[model.Band]string{
			model.BandGood:     "Cash returns from operations quickly.",
			model.BandWarning:  "Operations tie up cash for a noticeable period.",
			model.BandCritical: "Operations tie up cash for a long period.",
		},
	},
	model.RatioFinancialLeverage: {
		dir: targetRange, low: d("1.0"), high: d("1.5"), floor: d("0.8"), ceiling: d("2.0"),
		comments: map[model.Band]string{
			model.BandGood:     "Debt amplifies returns to equity in a balanced way.",
			model.BandWarning:  "Leverage is slightly outside the balanced range.",
			model.BandCritical: "Leverage is far from the balanced range.",
		},
	},
}

// Classify assigns a band and a comment to a ratio value.
func Classify(name model.RatioName, value decimal.NullDecimal) (model.Band, string) {
	r, ok := rules[name]
	if !ok {
		return model.BandUninterpreted, commentUninterpreted
	}
	if !value.Valid {
		return model.BandUnknown, commentUndefined
	}
	band := r.band(value.Decimal)
	return band, r.comments[band]
}

func (r rule) band(v decimal.Decimal) model.Band {
	switch r.dir {
	case higherIsBetter:
		switch {
		case v.GreaterThan(r.high):
			return model.BandGood
		case v.GreaterThanOrEqual(r.low):
			return model.BandWarning
		default:
			return model.BandCritical
		}
	case lowerIsBetter:
		switch {
		case v.LessThan(r.low):
			return model.BandGood
		case v.LessThanOrEqual(r.high):
			return model.BandWarning
		default:
			return model.BandCritical
		}
	default:
		switch {
		case v.GreaterThanOrEqual(r.low) && v.LessThanOrEqual(r.high):
			return model.BandGood
		case v.GreaterThanOrEqual(r.floor) && v.LessThanOrEqual(r.ceiling):
			return model.BandWarning
		default:
			return model.BandCritical
		}
	}
}
