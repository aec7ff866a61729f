package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ratios/internal/analysis"
	"github.com/cleared-dev/ratios/internal/config"
	"github.com/cleared-dev/ratios/internal/report"
	"github.com/cleared-dev/ratios/internal/statement"
)

// chartWidth is the terminal width used for bar charts.
const chartWidth = 72

type analyzeOptions struct {
	balance string
	income  string
	export  string
	format  string
	panel   bool
	charts  bool
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	var o analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the ratio table for a balance sheet and income statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return runAnalyze(cmd, cfg, o)
		},
	}

	cmd.Flags().StringVar(&o.balance, "balance", "", "balance sheet workbook (required)")
	cmd.Flags().StringVar(&o.income, "income", "", "income statement workbook (required)")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("income")
	cmd.Flags().StringVar(&o.export, "export", "", "write the ratio table to this file")
	cmd.Flags().StringVar(&o.format, "format", "", "export format: xlsx, csv or pdf (default from --export extension)")
	cmd.Flags().BoolVar(&o.panel, "panel", false, "show the grouped indicator panel")
	cmd.Flags().BoolVar(&o.charts, "charts", false, "show bar charts")

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, o analyzeOptions) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	balance, err := os.Open(o.balance)
	if err != nil {
		return fmt.Errorf("opening balance sheet: %w", err)
	}
	defer balance.Close()
	income, err := os.Open(o.income)
	if err != nil {
		return fmt.Errorf("opening income statement: %w", err)
	}
	defer income.Close()

	svc := analysis.NewService(statement.DefaultRegistry(cfg.Statements), cfg.LineItems, logger)
	res, err := svc.Analyze(cmd.Context(), statement.FormatFromFilename(o.balance), balance, income)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.RenderTable(res.Rows))
	if len(res.Missing) > 0 {
		fmt.Fprintf(out, "\nNot found, read as 0: %s\n", strings.Join(res.Missing, ", "))
	}
	if o.panel {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.RenderPanel(res.Panel))
	}
	if o.charts {
		for _, c := range res.Charts {
			fmt.Fprintln(out)
			fmt.Fprint(out, report.RenderChart(c, chartWidth))
		}
	}

	if o.export == "" {
		return nil
	}
	format := o.format
	if format == "" {
		format = statement.FormatFromFilename(o.export)
	}
	if format == "" {
		format = cfg.Export.Format
	}
	return exportRows(o.export, format, cfg, res.Rows)
}

func exportRows(path, format string, cfg *config.Config, rows []report.Row) error {
	exp := report.DefaultRegistry(cfg.Export.SheetName).Get(format)
	if exp == nil {
		return fmt.Errorf("unknown export format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := exp.Export(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("exporting %s: %w", exp.Format(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}
	return nil
}
