package ratio

import "github.com/cleared-dev/ratios/internal/model"

// GroupName names a section of the indicator panel.
type GroupName string

const (
	GroupLiquidity     GroupName = "Liquidity"
	GroupSolvency      GroupName = "Solvency"
	GroupProfitability GroupName = "Profitability"
	GroupActivity      GroupName = "Activity"
)

// Groups lists panel sections in display order.
var Groups = []GroupName{GroupLiquidity, GroupSolvency, GroupProfitability, GroupActivity}

var groupOf = map[model.RatioName]GroupName{
	model.RatioCurrent:             GroupLiquidity,
	model.RatioQuick:               GroupLiquidity,
	model.RatioCash:                GroupLiquidity,
	model.RatioTotalDebt:           GroupSolvency,
	model.RatioInterestCoverage:    GroupSolvency,
	model.RatioFinancialLeverage:   GroupSolvency,
	model.RatioReturnOnAssets:      GroupProfitability,
	model.RatioReturnOnSales:       GroupProfitability,
	model.RatioReturnOnCapital:     GroupProfitability,
	model.RatioInventoryTurnover:   GroupActivity,
	model.RatioDaysSales:           GroupActivity,
	model.RatioDaysPayables:        GroupActivity,
	model.RatioCashConversionCycle: GroupActivity,
}

// Group returns the panel section of a ratio.
func Group(name model.RatioName) (GroupName, bool) {
	g, ok := groupOf[name]
	return g, ok
}

// PanelGroup is one section of the indicator panel.
type PanelGroup struct {
	Name    GroupName
	Results []model.RatioResult
	// Worst is the most severe band among defined results, or BandUnknown
	// when none is defined.
	Worst model.Band
}

// Panel arranges results into indicator groups. Results keep their input
// order within a group; ratios without a group are left out.
func Panel(results []model.RatioResult) []PanelGroup {
	byGroup := make(map[GroupName][]model.RatioResult)
	for _, r := range results {
		g, ok := Group(r.Name)
		if !ok {
			continue
		}
		byGroup[g] = append(byGroup[g], r)
	}

	panel := make([]PanelGroup, 0, len(Groups))
	for _, g := range Groups {
		rs := byGroup[g]
		if len(rs) == 0 {
			continue
		}
		worst := model.BandUnknown
		for _, r := range rs {
			if r.Band.Severity() > worst.Severity() {
				worst = r.Band
			}
		}
		panel = append(panel, PanelGroup{Name: g, Results: rs, Worst: worst})
	}
	return panel
}
