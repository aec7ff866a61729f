package report

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// Exporter writes the ratio table in one file format.
type Exporter interface {
	Export(w io.Writer, rows []Row) error
	Format() string
	ContentType() string
}

// Registry holds named exporters.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.exporters[key] = e
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.exporters))
	for k := range r.exporters {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with all built-in exporters.
// sheetName names the worksheet of xlsx exports.
func DefaultRegistry(sheetName string) *Registry {
	r := NewRegistry()
	r.Register(&XLSXExporter{SheetName: sheetName})
	r.Register(&CSVExporter{})
	r.Register(&PDFExporter{Title: sheetName})
	return r
}

// FileName swaps the extension of base for the exporter's format.
// "ratios_financieros.xlsx" + csv -> "ratios_financieros.csv"
func FileName(base string, e Exporter) string {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "." + strings.ToLower(e.Format())
}
