// Package statementtest builds statement workbooks for tests.
package statementtest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is a named sheet with its rows, starting at A1.
type Sheet struct {
	Name string
	Rows [][]any
}

// Titles returns n title rows like the ones heading a statutory export.
func Titles(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{}
	}
	if n > 0 {
		rows[0] = []any{"ACME S.L."}
	}
	return rows
}

// Workbook writes the sheets into an in-memory xlsx file.
func Workbook(t testing.TB, sheets ...Sheet) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("renaming sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("creating sheet %q: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			vals := row
			if err := f.SetSheetRow(s.Name, cell, &vals); err != nil {
				t.Fatalf("writing row %d of %q: %v", r+1, s.Name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf
}

// Balance returns a balance sheet workbook in the default layout.
func Balance(t testing.TB) *bytes.Buffer {
	t.Helper()
	assets := append(Titles(5),
		[]any{"ACTIVO", "2024"},
		[]any{"A) ACTIVO NO CORRIENTE", 2000},
		[]any{"B) ACTIVO CORRIENTE", 1500},
		[]any{"II. Existencias", 300},
		[]any{"III. Deudores comerciales: Clientes por ventas", 400},
		[]any{"V. Inversiones financieras a corto plazo", 50},
		[]any{"VII. Tesorería", 200},
		[]any{"TOTAL ACTIVO (A+B)", 3500},
	)
	liabilities := append(Titles(5),
		[]any{"PATRIMONIO NETO Y PASIVO", "2024", "2023"},
		[]any{"A) PATRIMONIO NETO", 1400, 1300},
		[]any{"B) PASIVO NO CORRIENTE", 1100, 1000},
		[]any{"C) PASIVO CORRIENTE", 1000, 900},
		[]any{"V. Acreedores comerciales: Proveedores", 250, 200},
		[]any{"TOTAL PASIVO", 2100, 1900},
	)
	return Workbook(t,
		Sheet{Name: "Activo", Rows: assets},
		Sheet{Name: "Pasivo", Rows: liabilities},
	)
}

// Income returns an income statement workbook in the default layout.
func Income(t testing.TB) *bytes.Buffer {
	t.Helper()
	rows := append(Titles(5),
		[]any{"CUENTA DE PÉRDIDAS Y GANANCIAS", "2024", "2023"},
		[]any{"1. Importe neto de la cifra de negocios: Ventas", 5000, 4500},
		[]any{"4. Aprovisionamientos: Compras", 2000, 1800},
		[]any{"Consumo de explotación", 1800, 1700},
		[]any{"A.1) RESULTADO DE EXPLOTACIÓN", 600, 500},
		[]any{"13. Gastos financieros", -120, -100},
		[]any{"A.5) RESULTADO DEL EJERCICIO", 350, 300},
	)
	return Workbook(t, Sheet{Name: "Cuenta de Pérdidas y Ganancias", Rows: rows})
}
