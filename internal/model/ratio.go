package model

import "github.com/shopspring/decimal"

// RatioName identifies one of the computed indicators.
type RatioName string

const (
	RatioCurrent             RatioName = "current_ratio"
	RatioQuick               RatioName = "quick_ratio"
	RatioCash                RatioName = "cash_ratio"
	RatioTotalDebt           RatioName = "total_debt_ratio"
	RatioInterestCoverage    RatioName = "interest_coverage"
	RatioReturnOnAssets      RatioName = "return_on_assets"
	RatioReturnOnSales       RatioName = "return_on_sales"
	RatioReturnOnCapital     RatioName = "return_on_capital_employed"
	RatioInventoryTurnover   RatioName = "inventory_turnover"
	RatioDaysSales           RatioName = "days_sales_outstanding"
	RatioDaysPayables        RatioName = "days_payables_outstanding"
	RatioCashConversionCycle RatioName = "cash_conversion_cycle"
	RatioFinancialLeverage   RatioName = "financial_leverage"
)

// AllRatios lists every ratio in display and export order.
var AllRatios = []RatioName{
	RatioCurrent,
	RatioQuick,
	RatioCash,
	RatioTotalDebt,
	RatioInterestCoverage,
	RatioReturnOnAssets,
	RatioReturnOnSales,
	RatioReturnOnCapital,
	RatioInventoryTurnover,
	RatioDaysSales,
	RatioDaysPayables,
	RatioCashConversionCycle,
	RatioFinancialLeverage,
}

var ratioLabels = map[RatioName]string{
	RatioCurrent:             "1. Current Ratio",
	RatioQuick:               "2. Quick Ratio",
	RatioCash:                "3. Cash Ratio",
	RatioTotalDebt:           "4. Total Debt Ratio",
	RatioInterestCoverage:    "5. Interest Coverage",
	RatioReturnOnAssets:      "6. ROA",
	RatioReturnOnSales:       "7. ROS",
	RatioReturnOnCapital:     "8. ROCE",
	RatioInventoryTurnover:   "9. Inventory Turnover",
	RatioDaysSales:           "10. Days Sales Outstanding",
	RatioDaysPayables:        "11. Days Payables Outstanding",
	RatioCashConversionCycle: "12. Cash Conversion Cycle",
	RatioFinancialLeverage:   "13. Financial Leverage",
}

// Label returns the numbered display label, or the raw name for unknown ratios.
func (n RatioName) Label() string {
	if l, ok := ratioLabels[n]; ok {
		return l
	}
	return string(n)
}

// Band is the qualitative risk classification of a ratio value.
type Band string

const (
	BandGood     Band = "GOOD"
	BandWarning  Band = "WARNING"
	BandCritical Band = "CRITICAL"
	BandUnknown  Band = "UNKNOWN" // value is undefined
	// BandUninterpreted is used for names outside the threshold table.
	BandUninterpreted Band = "UNINTERPRETED"
)

// Glyph returns the marker shown next to a band in tables and exports.
func (b Band) Glyph() string {
	switch b {
	case BandGood:
		return "🟢"
	case BandWarning:
		return "🟡"
	case BandCritical:
		return "🔴"
	case BandUnknown:
		return "⚪"
	default:
		return "❔"
	}
}

// Severity orders bands from best (0) to worst. Used for panel summaries.
func (b Band) Severity() int {
	switch b {
	case BandGood:
		return 0
	case BandWarning:
		return 1
	case BandCritical:
		return 2
	default:
		return -1
	}
}

// RatioResult is one computed and classified indicator.
type RatioResult struct {
	Name    RatioName
	Value   decimal.NullDecimal // Valid=false means undefined
	Band    Band
	Comment string
}

// Defined reports whether the ratio has a numeric value.
func (r RatioResult) Defined() bool {
	return r.Value.Valid
}
