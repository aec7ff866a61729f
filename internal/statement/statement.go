package statement

import (
	"io"
	"strings"

	"github.com/cleared-dev/ratios/internal/model"
)

// Layout describes where the statements live inside the uploaded workbooks.
type Layout struct {
	AssetsSheet      string `yaml:"assets_sheet" mapstructure:"assets_sheet" validate:"required"`
	LiabilitiesSheet string `yaml:"liabilities_sheet" mapstructure:"liabilities_sheet" validate:"required"`
	IncomeSheet      string `yaml:"income_sheet" mapstructure:"income_sheet" validate:"required"`
	// SkipRows is the number of title rows before the column header row.
	SkipRows int `yaml:"skip_rows" mapstructure:"skip_rows" validate:"gte=0"`
}

// DefaultLayout matches the statutory export used by Spanish accounting tools.
func DefaultLayout() Layout {
	return Layout{
		AssetsSheet:      "Activo",
		LiabilitiesSheet: "Pasivo",
		IncomeSheet:      "Cuenta de Pérdidas y Ganancias",
		SkipRows:         5,
	}
}

// Column counts per sheet: account name plus one or two amounts.
const (
	assetsColumns      = 2
	liabilitiesColumns = 3
	incomeColumns      = 3
)

// Document names used in error messages.
const (
	DocumentBalance = "balance"
	DocumentIncome  = "income"
)

// Parser reads balance sheet and income statement workbooks.
type Parser interface {
	ParseBalance(r io.Reader) (assets, liabilities model.LineItemTable, err error)
	ParseIncome(r io.Reader) (model.LineItemTable, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate statement format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry(layout Layout) *Registry {
	r := NewRegistry()
	r.Register(NewXLSXParser(layout))
	return r
}

// Load parses both documents with p. Any structural failure aborts the
// whole load.
func Load(p Parser, balance, income io.Reader) (model.Statements, error) {
	assets, liabilities, err := p.ParseBalance(balance)
	if err != nil {
		return model.Statements{}, err
	}
	inc, err := p.ParseIncome(income)
	if err != nil {
		return model.Statements{}, err
	}
	return model.Statements{Assets: assets, Liabilities: liabilities, Income: inc}, nil
}

// FormatFromFilename returns the lowercase extension of name without the dot.
func FormatFromFilename(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

func sectionColumns(s model.Section) int {
	switch s {
	case model.SectionAssets:
		return assetsColumns
	case model.SectionLiabilities:
		return liabilitiesColumns
	default:
		return incomeColumns
	}
}
