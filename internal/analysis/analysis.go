package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/cleared-dev/ratios/internal/lineitem"
	"github.com/cleared-dev/ratios/internal/model"
	"github.com/cleared-dev/ratios/internal/ratio"
	"github.com/cleared-dev/ratios/internal/report"
	"github.com/cleared-dev/ratios/internal/statement"
)

// ErrUnknownFormat is returned when no parser handles the statement format.
var ErrUnknownFormat = errors.New("unknown statement format")

// Result is one analysed pair of statements.
type Result struct {
	ID      string
	Items   lineitem.Items
	Results []model.RatioResult
	Rows    []report.Row
	Panel   []ratio.PanelGroup
	Charts  []report.Chart
	Missing []string
}

// Service runs the statement-to-report pipeline.
type Service struct {
	parsers *statement.Registry
	keys    lineitem.Keys
	logger  *log.Logger
}

// NewService creates a Service.
func NewService(parsers *statement.Registry, keys lineitem.Keys, logger *log.Logger) *Service {
	return &Service{parsers: parsers, keys: keys, logger: logger}
}

// Analyze parses both documents with the parser for format and computes
// the full ratio batch. A malformed document aborts the batch.
func (s *Service) Analyze(ctx context.Context, format string, balance, income io.Reader) (*Result, error) {
	p := s.parsers.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	id := uuid.NewString()
	stmts, err := statement.Load(p, balance, income)
	if err != nil {
		s.logger.Warn().Str("analysis", id).Err(err).Msg("statements rejected")
		return nil, fmt.Errorf("loading statements: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := lineitem.Extract(stmts, s.keys)
	for _, key := range items.Missing {
		s.logger.Warn().Str("analysis", id).Str("key", key).Msg("line item not found, using zero")
	}

	results := ratio.Compute(items)
	undefined := 0
	for _, r := range results {
		if !r.Defined() {
			undefined++
		}
	}
	s.logger.Info().
		Str("analysis", id).
		Int("assets", len(stmts.Assets.Rows)).
		Int("liabilities", len(stmts.Liabilities.Rows)).
		Int("income", len(stmts.Income.Rows)).
		Int("undefined", undefined).
		Msg("ratios computed")

	missing := items.Missing
	if missing == nil {
		missing = []string{}
	}
	return &Result{
		ID:      id,
		Items:   items,
		Results: results,
		Rows:    report.BuildRows(results),
		Panel:   ratio.Panel(results),
		Charts:  report.Charts(results),
		Missing: missing,
	}, nil
}
