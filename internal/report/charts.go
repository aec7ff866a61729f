package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/model"
)

// Bar is one bar of a chart.
type Bar struct {
	Name  model.RatioName `json:"name"`
	Label string          `json:"label"`
	Value float64         `json:"value"`
	Band  model.Band      `json:"band"`
}

// Chart is a bar chart over a subset of the ratios.
type Chart struct {
	Title string `json:"title"`
	Unit  string `json:"unit,omitempty"`
	Bars  []Bar  `json:"bars"`
}

type chartSpec struct {
	title  string
	unit   string
	scale  decimal.Decimal
	ratios []model.RatioName
}

var hundred = decimal.NewFromInt(100)

var chartSpecs = []chartSpec{
	{
		title: "Liquidity and solvency",
		scale: decimal.NewFromInt(1),
		ratios: []model.RatioName{
			model.RatioCurrent,
			model.RatioQuick,
			model.RatioCash,
			model.RatioTotalDebt,
			model.RatioInterestCoverage,
			model.RatioFinancialLeverage,
		},
	},
	{
		title: "Profitability",
		unit:  "%",
		scale: hundred,
		ratios: []model.RatioName{
			model.RatioReturnOnAssets,
			model.RatioReturnOnSales,
			model.RatioReturnOnCapital,
		},
	},
}

// Charts returns the two bar charts of the report. Undefined ratios have
// no bar.
func Charts(results []model.RatioResult) []Chart {
	byName := make(map[model.RatioName]model.RatioResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}

	charts := make([]Chart, 0, len(chartSpecs))
	for _, spec := range chartSpecs {
		c := Chart{Title: spec.title, Unit: spec.unit, Bars: []Bar{}}
		for _, name := range spec.ratios {
			r, ok := byName[name]
			if !ok || !r.Defined() {
				continue
			}
			v := r.Value.Decimal.Mul(spec.scale).Round(ValuePlaces)
			c.Bars = append(c.Bars, Bar{
				Name:  name,
				Label: name.Label(),
				Value: v.InexactFloat64(),
				Band:  r.Band,
			})
		}
		charts = append(charts, c)
	}
	return charts
}
