package ratio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ratios/internal/lineitem"
	"github.com/cleared-dev/ratios/internal/model"
)

func num(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

var zero = num("0")

// zeroItems returns Items where every line item defaulted to zero.
func zeroItems() lineitem.Items {
	return lineitem.Items{
		CurrentAssets: zero, Inventory: zero, Cash: zero, ShortTermInvestments: zero,
		TotalAssets: zero, AccountsReceivable: zero, CurrentLiabilities: zero,
		NonCurrentLiabilities: zero, TotalLiabilities: zero, Equity: zero,
		AccountsPayable: zero, Revenue: zero, Purchases: zero, CostOfGoodsSold: zero,
		FinancialExpenses: zero, OperatingIncome: zero, NetIncome: zero,
	}
}

func sampleItems() lineitem.Items {
	return lineitem.Items{
		CurrentAssets:         num("1500"),
		Inventory:             num("300"),
		Cash:                  num("200"),
		ShortTermInvestments:  num("50"),
		TotalAssets:           num("3500"),
		AccountsReceivable:    num("400"),
		CurrentLiabilities:    num("1000"),
		NonCurrentLiabilities: num("1100"),
		TotalLiabilities:      num("2100"),
		Equity:                num("1400"),
		AccountsPayable:       num("250"),
		Revenue:               num("5000"),
		Purchases:             num("2000"),
		CostOfGoodsSold:       num("1800"),
		FinancialExpenses:     num("120"),
		OperatingIncome:       num("600"),
		NetIncome:             num("350"),
	}
}

func byName(results []model.RatioResult) map[model.RatioName]model.RatioResult {
	m := make(map[model.RatioName]model.RatioResult, len(results))
	for _, r := range results {
		m[r.Name] = r
	}
	return m
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		num, den decimal.NullDecimal
		want     string // "" = undefined
	}{
		{"zero denominator", num("5"), zero, ""},
		{"negative over zero", num("-5"), zero, ""},
		{"zero numerator", zero, num("7"), "0"},
		{"quotient", num("150"), num("100"), "1.5"},
		{"invalid numerator", decimal.NullDecimal{}, num("2"), ""},
		{"invalid denominator", num("2"), decimal.NullDecimal{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDiv(tt.num, tt.den)
			if tt.want == "" {
				assert.False(t, got.Valid)
				return
			}
			require.True(t, got.Valid)
			assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), "got %s", got.Decimal)
		})
	}
}

func TestCompute_Order(t *testing.T) {
	results := Compute(sampleItems())
	require.Len(t, results, len(model.AllRatios))
	for i, name := range model.AllRatios {
		assert.Equal(t, name, results[i].Name)
	}
}

func TestCompute_SampleValues(t *testing.T) {
	got := byName(Compute(sampleItems()))

	tests := []struct {
		name model.RatioName
		want float64
		band model.Band
	}{
		{model.RatioCurrent, 1.5, model.BandWarning},
		{model.RatioQuick, 1.2, model.BandGood},
		{model.RatioCash, 0.25, model.BandWarning},
		{model.RatioTotalDebt, 1.5, model.BandWarning},
		{model.RatioInterestCoverage, 5, model.BandGood},
		{model.RatioReturnOnAssets, 0.1, model.BandGood},
		{model.RatioReturnOnSales, 0.07, model.BandWarning},
		{model.RatioReturnOnCapital, 0.24, model.BandGood},
		{model.RatioInventoryTurnover, 6, model.BandGood},
		{model.RatioDaysSales, 29.2, model.BandGood},
		{model.RatioDaysPayables, 45.625, model.BandGood},
		{model.RatioCashConversionCycle, 29.2 + 365.0/6 - 45.625, model.BandGood},
		{model.RatioFinancialLeverage, 2.5, model.BandCritical},
	}
	for _, tt := range tests {
		r := got[tt.name]
		require.True(t, r.Defined(), "%s should be defined", tt.name)
		assert.InDelta(t, tt.want, r.Value.Decimal.InexactFloat64(), 1e-9, "%s", tt.name)
		assert.Equal(t, tt.band, r.Band, "%s", tt.name)
		assert.NotEmpty(t, r.Comment)
	}
}

func TestCompute_CurrentRatioBoundary(t *testing.T) {
	it := zeroItems()
	it.CurrentAssets = num("150")
	it.CurrentLiabilities = num("100")

	r := byName(Compute(it))[model.RatioCurrent]
	require.True(t, r.Defined())
	assert.Equal(t, "1.5", r.Value.Decimal.String())
	assert.Equal(t, model.BandWarning, r.Band)
}

func TestCompute_ZeroInventory(t *testing.T) {
	it := zeroItems()
	it.CurrentAssets = num("150")
	it.CurrentLiabilities = num("100")
	it.AccountsReceivable = num("100")
	it.Revenue = num("365")

	got := byName(Compute(it))

	turnover := got[model.RatioInventoryTurnover]
	assert.False(t, turnover.Defined())
	assert.Equal(t, model.BandUnknown, turnover.Band)

	// DSO = 100 days; inventory and payables terms default to zero.
	cycle := got[model.RatioCashConversionCycle]
	require.True(t, cycle.Defined())
	assert.InDelta(t, 100, cycle.Value.Decimal.InexactFloat64(), 1e-9)
}

func TestCompute_ZeroRevenue(t *testing.T) {
	it := sampleItems()
	it.Revenue = zero

	got := byName(Compute(it))
	assert.False(t, got[model.RatioDaysSales].Defined())
	assert.Equal(t, model.BandUnknown, got[model.RatioDaysSales].Band)
	assert.False(t, got[model.RatioReturnOnSales].Defined())
}

func TestCompute_ZeroPurchases(t *testing.T) {
	it := sampleItems()
	it.Purchases = zero

	got := byName(Compute(it))
	assert.False(t, got[model.RatioDaysPayables].Defined())
	assert.True(t, got[model.RatioCashConversionCycle].Defined())
}

func TestCompute_LeverageGuard(t *testing.T) {
	for _, field := range []string{"net_income", "equity", "total_assets"} {
		t.Run(field, func(t *testing.T) {
			it := sampleItems()
			switch field {
			case "net_income":
				it.NetIncome = zero
			case "equity":
				it.Equity = zero
			case "total_assets":
				it.TotalAssets = zero
			}
			r := byName(Compute(it))[model.RatioFinancialLeverage]
			assert.False(t, r.Defined())
			assert.Equal(t, model.BandUnknown, r.Band)
		})
	}
}

func TestCompute_CycleAlwaysDefined(t *testing.T) {
	it := zeroItems()
	it.Inventory = decimal.NullDecimal{}
	it.Revenue = decimal.NullDecimal{}

	r := byName(Compute(it))[model.RatioCashConversionCycle]
	require.True(t, r.Defined())
	assert.True(t, r.Value.Decimal.IsZero())
}

func TestCompute_AllZeroBatch(t *testing.T) {
	for _, r := range Compute(zeroItems()) {
		if r.Name == model.RatioCashConversionCycle {
			assert.True(t, r.Defined())
			continue
		}
		assert.False(t, r.Defined(), "%s should be undefined on an empty statement", r.Name)
	}
}

func TestCompute_BandUnknownIffUndefined(t *testing.T) {
	batches := []lineitem.Items{sampleItems(), zeroItems()}
	partial := sampleItems()
	partial.CurrentLiabilities = zero
	partial.Inventory = zero
	batches = append(batches, partial)

	for _, it := range batches {
		for _, r := range Compute(it) {
			assert.Equal(t, !r.Defined(), r.Band == model.BandUnknown, "%s", r.Name)
		}
	}
}

func TestCompute_ROCEZeroCapital(t *testing.T) {
	it := sampleItems()
	it.Equity = num("-1100")
	r := byName(Compute(it))[model.RatioReturnOnCapital]
	assert.False(t, r.Defined(), "equity + non-current liabilities of zero is undefined")
}

func TestCompute_ChainedRatiosOnCutPoints(t *testing.T) {
	tests := []struct {
		name  string
		ratio model.RatioName
		setup func(it *lineitem.Items)
		want  string
		band  model.Band
	}{
		{"dso at 90 days", model.RatioDaysSales, func(it *lineitem.Items) {
			it.AccountsReceivable, it.Revenue = num("90"), num("365")
		}, "90", model.BandWarning},
		{"dso at 120 days", model.RatioDaysSales, func(it *lineitem.Items) {
			it.AccountsReceivable, it.Revenue = num("120"), num("365")
		}, "120", model.BandWarning},
		{"dpo at 90 days", model.RatioDaysPayables, func(it *lineitem.Items) {
			it.AccountsPayable, it.Purchases = num("90"), num("365")
		}, "90", model.BandWarning},
		{"dpo at 120 days", model.RatioDaysPayables, func(it *lineitem.Items) {
			it.AccountsPayable, it.Purchases = num("120"), num("365")
		}, "120", model.BandWarning},
		{"cycle at 60 days from inventory", model.RatioCashConversionCycle, func(it *lineitem.Items) {
			it.Inventory, it.CostOfGoodsSold = num("60"), num("365")
		}, "60", model.BandWarning},
		{"cycle at 120 days", model.RatioCashConversionCycle, func(it *lineitem.Items) {
			it.AccountsReceivable, it.Revenue = num("100"), num("365")
			it.Inventory, it.CostOfGoodsSold = num("50"), num("365")
			it.AccountsPayable, it.Purchases = num("30"), num("365")
		}, "120", model.BandWarning},
		{"leverage at 1.5", model.RatioFinancialLeverage, func(it *lineitem.Items) {
			it.NetIncome, it.Equity, it.TotalAssets = num("1"), num("2"), num("3")
		}, "1.5", model.BandGood},
		{"leverage at 2.0", model.RatioFinancialLeverage, func(it *lineitem.Items) {
			it.NetIncome, it.Equity, it.TotalAssets = num("7"), num("3"), num("6")
		}, "2", model.BandWarning},
		{"leverage at 0.8", model.RatioFinancialLeverage, func(it *lineitem.Items) {
			it.NetIncome, it.Equity, it.TotalAssets = num("-3"), num("5"), num("4")
		}, "0.8", model.BandWarning},
		{"leverage with tiny return on assets", model.RatioFinancialLeverage, func(it *lineitem.Items) {
			it.NetIncome, it.Equity, it.TotalAssets = num("1"), num("1"), num("100000000000000000")
		}, "100000000000000000", model.BandCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := zeroItems()
			tt.setup(&it)

			r := byName(Compute(it))[tt.ratio]
			require.True(t, r.Defined())
			assert.True(t, r.Value.Decimal.Equal(decimal.RequireFromString(tt.want)), "got %s", r.Value.Decimal)
			assert.Equal(t, tt.band, r.Band)
		})
	}
}
