package ratio

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/lineitem"
	"github.com/cleared-dev/ratios/internal/model"
)

// Values computes every ratio from the resolved line items. Each ratio
// degrades to Undefined on its own; none of them can fail the batch.
func Values(it lineitem.Items) map[model.RatioName]decimal.NullDecimal {
	// Day counts multiply before dividing so exact inputs give exact days.
	inventoryTurnover := SafeDiv(it.CostOfGoodsSold, it.Inventory)
	dso := SafeDiv(mul(it.AccountsReceivable, daysPerYear), it.Revenue)
	dpo := SafeDiv(mul(it.AccountsPayable, daysPerYear), it.Purchases)

	// 365 / turnover, undefined when the turnover is undefined or zero.
	daysInventory := Undefined
	if truthy(it.Inventory) {
		daysInventory = SafeDiv(mul(it.Inventory, daysPerYear), it.CostOfGoodsSold)
	}

	// Each cycle term falls back to zero on its own, so the cycle is always defined.
	cycle := orZero(dso).
		Add(orZero(daysInventory)).
		Sub(orZero(dpo))

	// (NI/E) / (NI/TA) reduces to TA/E once net income is non-zero.
	leverage := Undefined
	if truthy(it.Equity) && truthy(it.TotalAssets) && truthy(it.NetIncome) {
		leverage = SafeDiv(it.TotalAssets, it.Equity)
	}

	return map[model.RatioName]decimal.NullDecimal{
		model.RatioCurrent:             SafeDiv(it.CurrentAssets, it.CurrentLiabilities),
		model.RatioQuick:               SafeDiv(sub(it.CurrentAssets, it.Inventory), it.CurrentLiabilities),
		model.RatioCash:                SafeDiv(add(it.Cash, it.ShortTermInvestments), it.CurrentLiabilities),
		model.RatioTotalDebt:           SafeDiv(it.TotalLiabilities, it.Equity),
		model.RatioInterestCoverage:    SafeDiv(it.OperatingIncome, it.FinancialExpenses),
		model.RatioReturnOnAssets:      SafeDiv(it.NetIncome, it.TotalAssets),
		model.RatioReturnOnSales:       SafeDiv(it.NetIncome, it.Revenue),
		model.RatioReturnOnCapital:     SafeDiv(it.OperatingIncome, add(it.Equity, it.NonCurrentLiabilities)),
		model.RatioInventoryTurnover:   inventoryTurnover,
		model.RatioDaysSales:           dso,
		model.RatioDaysPayables:        dpo,
		model.RatioCashConversionCycle: defined(cycle),
		model.RatioFinancialLeverage:   leverage,
	}
}

// Compute returns every ratio, classified, in model.AllRatios order.
func Compute(it lineitem.Items) []model.RatioResult {
	values := Values(it)
	results := make([]model.RatioResult, 0, len(model.AllRatios))
	for _, name := range model.AllRatios {
		results = append(results, Evaluate(name, values[name]))
	}
	return results
}

// Evaluate classifies a single ratio value into a RatioResult.
func Evaluate(name model.RatioName, value decimal.NullDecimal) model.RatioResult {
	band, comment := Classify(name, value)
	return model.RatioResult{
		Name:    name,
		Value:   value,
		Band:    band,
		Comment: comment,
	}
}
