package lineitem

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ratios/internal/model"
)

// Keys holds the search key for every line item the ratios need.
type Keys struct {
	// Asset sheet.
	CurrentAssets        string `yaml:"current_assets" mapstructure:"current_assets" validate:"required"`
	Inventory            string `yaml:"inventory" mapstructure:"inventory" validate:"required"`
	Cash                 string `yaml:"cash" mapstructure:"cash" validate:"required"`
	ShortTermInvestments string `yaml:"short_term_investments" mapstructure:"short_term_investments" validate:"required"`
	TotalAssets          string `yaml:"total_assets" mapstructure:"total_assets" validate:"required"`
	AccountsReceivable   string `yaml:"accounts_receivable" mapstructure:"accounts_receivable" validate:"required"`

	// Liabilities and equity sheet.
	CurrentLiabilities    string `yaml:"current_liabilities" mapstructure:"current_liabilities" validate:"required"`
	NonCurrentLiabilities string `yaml:"non_current_liabilities" mapstructure:"non_current_liabilities" validate:"required"`
	TotalLiabilities      string `yaml:"total_liabilities" mapstructure:"total_liabilities" validate:"required"`
	Equity                string `yaml:"equity" mapstructure:"equity" validate:"required"`
	AccountsPayable       string `yaml:"accounts_payable" mapstructure:"accounts_payable" validate:"required"`

	// Income statement.
	Revenue           string `yaml:"revenue" mapstructure:"revenue" validate:"required"`
	Purchases         string `yaml:"purchases" mapstructure:"purchases" validate:"required"`
	CostOfGoodsSold   string `yaml:"cost_of_goods_sold" mapstructure:"cost_of_goods_sold" validate:"required"`
	FinancialExpenses string `yaml:"financial_expenses" mapstructure:"financial_expenses" validate:"required"`
	OperatingIncome   string `yaml:"operating_income" mapstructure:"operating_income" validate:"required"`
	NetIncome         string `yaml:"net_income" mapstructure:"net_income" validate:"required"`
}

// DefaultKeys returns the account labels used by Spanish statutory statements.
func DefaultKeys() Keys {
	return Keys{
		CurrentAssets:        "ACTIVO CORRIENTE",
		Inventory:            "EXISTENCIAS",
		Cash:                 "TESORERÍA",
		ShortTermInvestments: "INVERSIONES FINANCIERAS A CORTO",
		TotalAssets:          "TOTAL ACTIVO",
		AccountsReceivable:   "CLIENTES",

		CurrentLiabilities:    "PASIVO CORRIENTE",
		NonCurrentLiabilities: "PASIVO NO CORRIENTE",
		TotalLiabilities:      "TOTAL PASIVO",
		Equity:                "PATRIMONIO NETO",
		AccountsPayable:       "PROVEEDORES",

		Revenue:           "VENTAS",
		Purchases:         "COMPRAS",
		CostOfGoodsSold:   "CONSUMO DE EXPLOTACIÓN",
		FinancialExpenses: "GASTOS FINANCIEROS",
		OperatingIncome:   "RESULTADO DE EXPLOTACIÓN",
		NetIncome:         "RESULTADO DEL EJERCICIO",
	}
}

// Items are the resolved line items feeding the ratio engine.
type Items struct {
	CurrentAssets        decimal.NullDecimal
	Inventory            decimal.NullDecimal
	Cash                 decimal.NullDecimal
	ShortTermInvestments decimal.NullDecimal
	TotalAssets          decimal.NullDecimal
	AccountsReceivable   decimal.NullDecimal

	CurrentLiabilities    decimal.NullDecimal
	NonCurrentLiabilities decimal.NullDecimal
	TotalLiabilities      decimal.NullDecimal
	Equity                decimal.NullDecimal
	AccountsPayable       decimal.NullDecimal

	Revenue           decimal.NullDecimal
	Purchases         decimal.NullDecimal
	CostOfGoodsSold   decimal.NullDecimal
	FinancialExpenses decimal.NullDecimal // always non-negative
	OperatingIncome   decimal.NullDecimal
	NetIncome         decimal.NullDecimal

	// Missing lists the keys that matched no row and were read as zero.
	Missing []string
}

// Extract resolves every line item from its statement section.
func Extract(stmts model.Statements, keys Keys) Items {
	var items Items
	r := func(table model.LineItemTable, key string, column model.Column) decimal.NullDecimal {
		v, found := lookup(table, key, column)
		if !found {
			items.Missing = append(items.Missing, key)
		}
		return v
	}

	// The asset sheet has a single amount column.
	a := stmts.Assets
	items.CurrentAssets = r(a, keys.CurrentAssets, model.ColumnCurrent)
	items.Inventory = r(a, keys.Inventory, model.ColumnCurrent)
	items.Cash = r(a, keys.Cash, model.ColumnCurrent)
	items.ShortTermInvestments = r(a, keys.ShortTermInvestments, model.ColumnCurrent)
	items.TotalAssets = r(a, keys.TotalAssets, model.ColumnCurrent)
	items.AccountsReceivable = r(a, keys.AccountsReceivable, model.ColumnCurrent)

	l := stmts.Liabilities
	items.CurrentLiabilities = r(l, keys.CurrentLiabilities, model.ColumnCurrent)
	items.NonCurrentLiabilities = r(l, keys.NonCurrentLiabilities, model.ColumnCurrent)
	items.TotalLiabilities = r(l, keys.TotalLiabilities, model.ColumnCurrent)
	items.Equity = r(l, keys.Equity, model.ColumnCurrent)
	items.AccountsPayable = r(l, keys.AccountsPayable, model.ColumnCurrent)

	p := stmts.Income
	items.Revenue = r(p, keys.Revenue, model.ColumnCurrent)
	items.Purchases = r(p, keys.Purchases, model.ColumnCurrent)
	items.CostOfGoodsSold = r(p, keys.CostOfGoodsSold, model.ColumnCurrent)
	items.FinancialExpenses = abs(r(p, keys.FinancialExpenses, model.ColumnCurrent))
	items.OperatingIncome = r(p, keys.OperatingIncome, model.ColumnCurrent)
	items.NetIncome = r(p, keys.NetIncome, model.ColumnCurrent)

	return items
}

func abs(v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NullDecimal{Decimal: v.Decimal.Abs(), Valid: true}
}
