package ratio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/ratios/internal/model"
)

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		name  model.RatioName
		value string
		want  model.Band
	}{
		{model.RatioCurrent, "1.51", model.BandGood},
		{model.RatioCurrent, "1.5", model.BandWarning},
		{model.RatioCurrent, "1.0", model.BandWarning},
		{model.RatioCurrent, "0.99", model.BandCritical},

		{model.RatioQuick, "1.01", model.BandGood},
		{model.RatioQuick, "1.0", model.BandWarning},
		{model.RatioQuick, "0.8", model.BandWarning},
		{model.RatioQuick, "0.79", model.BandCritical},

		{model.RatioCash, "0.51", model.BandGood},
		{model.RatioCash, "0.5", model.BandWarning},
		{model.RatioCash, "0.2", model.BandWarning},
		{model.RatioCash, "0.19", model.BandCritical},

		{model.RatioTotalDebt, "0.99", model.BandGood},
		{model.RatioTotalDebt, "1.0", model.BandWarning},
		{model.RatioTotalDebt, "2.0", model.BandWarning},
		{model.RatioTotalDebt, "2.01", model.BandCritical},

		{model.RatioInterestCoverage, "3.01", model.BandGood},
		{model.RatioInterestCoverage, "3.0", model.BandWarning},
		{model.RatioInterestCoverage, "1.5", model.BandWarning},
		{model.RatioInterestCoverage, "1.49", model.BandCritical},

		{model.RatioReturnOnAssets, "0.051", model.BandGood},
		{model.RatioReturnOnAssets, "0.05", model.BandWarning},
		{model.RatioReturnOnAssets, "0.02", model.BandWarning},
		{model.RatioReturnOnAssets, "-0.1", model.BandCritical},

		{model.RatioReturnOnSales, "0.071", model.BandGood},
		{model.RatioReturnOnSales, "0.03", model.BandWarning},
		{model.RatioReturnOnSales, "0.029", model.BandCritical},

		{model.RatioReturnOnCapital, "0.11", model.BandGood},
		{model.RatioReturnOnCapital, "0.10", model.BandWarning},
		{model.RatioReturnOnCapital, "0.049", model.BandCritical},

		{model.RatioInventoryTurnover, "5.1", model.BandGood},
		{model.RatioInventoryTurnover, "5", model.BandWarning},
		{model.RatioInventoryTurnover, "3", model.BandWarning},
		{model.RatioInventoryTurnover, "2.9", model.BandCritical},

		{model.RatioDaysSales, "89.9", model.BandGood},
		{model.RatioDaysSales, "90", model.BandWarning},
		{model.RatioDaysSales, "120", model.BandWarning},
		{model.RatioDaysSales, "120.1", model.BandCritical},

		{model.RatioDaysPayables, "-10", model.BandGood},
		{model.RatioDaysPayables, "100", model.BandWarning},
		{model.RatioDaysPayables, "121", model.BandCritical},

		{model.RatioCashConversionCycle, "59", model.BandGood},
		{model.RatioCashConversionCycle, "60", model.BandWarning},
		{model.RatioCashConversionCycle, "120", model.BandWarning},
		{model.RatioCashConversionCycle, "121", model.BandCritical},

		{model.RatioFinancialLeverage, "1.0", model.BandGood},
		{model.RatioFinancialLeverage, "1.5", model.BandGood},
		{model.RatioFinancialLeverage, "0.8", model.BandWarning},
		{model.RatioFinancialLeverage, "0.99", model.BandWarning},
		{model.RatioFinancialLeverage, "1.51", model.BandWarning},
		{model.RatioFinancialLeverage, "2.0", model.BandWarning},
		{model.RatioFinancialLeverage, "0.79", model.BandCritical},
		{model.RatioFinancialLeverage, "2.01", model.BandCritical},
	}
	for _, tt := range tests {
		band, comment := Classify(tt.name, num(tt.value))
		assert.Equal(t, tt.want, band, "Classify(%s, %s)", tt.name, tt.value)
		assert.NotEmpty(t, comment)
	}
}

func TestClassify_Undefined(t *testing.T) {
	for _, name := range model.AllRatios {
		band, comment := Classify(name, decimal.NullDecimal{})
		assert.Equal(t, model.BandUnknown, band, "%s", name)
		assert.Equal(t, commentUndefined, comment)
	}
}

func TestClassify_UnknownName(t *testing.T) {
	band, comment := Classify("asset_turnover", num("1.2"))
	assert.Equal(t, model.BandUninterpreted, band)
	assert.Equal(t, commentUninterpreted, comment)

	band, _ = Classify("asset_turnover", decimal.NullDecimal{})
	assert.Equal(t, model.BandUninterpreted, band, "unknown names stay uninterpreted even when undefined")
}

func TestClassify_CommentsDifferByBand(t *testing.T) {
	for _, name := range model.AllRatios {
		r, ok := rules[name]
		if !assert.True(t, ok, "missing rule for %s", name) {
			continue
		}
		seen := make(map[string]bool)
		for _, b := range []model.Band{model.BandGood, model.BandWarning, model.BandCritical} {
			c := r.comments[b]
			assert.NotEmpty(t, c, "%s/%s", name, b)
			assert.False(t, seen[c], "%s reuses comment across bands", name)
			seen[c] = true
		}
	}
}

func TestPanel(t *testing.T) {
	panel := Panel(Compute(sampleItems()))
	if !assert.Len(t, panel, 4) {
		return
	}
	assert.Equal(t, GroupLiquidity, panel[0].Name)
	assert.Len(t, panel[0].Results, 3)
	assert.Equal(t, model.BandWarning, panel[0].Worst)

	assert.Equal(t, GroupSolvency, panel[1].Name)
	assert.Equal(t, model.RatioFinancialLeverage, panel[1].Results[2].Name)
	assert.Equal(t, model.BandCritical, panel[1].Worst)

	assert.Equal(t, GroupActivity, panel[3].Name)
	assert.Len(t, panel[3].Results, 4)
}

func TestPanel_AllUndefined(t *testing.T) {
	results := []model.RatioResult{Evaluate(model.RatioCurrent, Undefined)}
	panel := Panel(results)
	if assert.Len(t, panel, 1) {
		assert.Equal(t, model.BandUnknown, panel[0].Worst)
	}
}
