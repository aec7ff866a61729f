package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleared-dev/ratios/internal/model"
	"github.com/cleared-dev/ratios/internal/ratio"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	bandStyles = map[model.Band]lipgloss.Style{
		model.BandGood:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.BandWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.BandCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func bandStyle(b model.Band) lipgloss.Style {
	if s, ok := bandStyles[b]; ok {
		return s
	}
	return mutedStyle
}

// RenderTable draws the ratio table for a terminal.
func RenderTable(rows []Row) string {
	widths := make([]int, len(Header))
	for i, h := range Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, v := range marshalRow(row) {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	var b strings.Builder
	for i, h := range Header {
		b.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, v := range marshalRow(row) {
			style := lipgloss.NewStyle()
			if i == colValue {
				style = style.Align(lipgloss.Right).PaddingRight(2)
			}
			b.WriteString(style.Width(widths[i] + 2).Render(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPanel draws the grouped indicator panel.
func RenderPanel(panel []ratio.PanelGroup) string {
	var sections []string
	for _, g := range panel {
		lines := []string{titleStyle.Render(string(g.Name)) + " " + bandStyle(g.Worst).Render(BandLabel(g.Worst))}
		for _, r := range g.Results {
			line := fmt.Sprintf("  %s %-32s %12s", r.Band.Glyph(), r.Name.Label(), FormatValue(r.Value))
			lines = append(lines, bandStyle(r.Band).Render(line))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderChart draws a horizontal bar chart no wider than width columns.
func RenderChart(c Chart, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	if len(c.Bars) == 0 {
		b.WriteString(mutedStyle.Render("  no defined values"))
		b.WriteString("\n")
		return b.String()
	}

	labelWidth := 0
	peak := 0.0
	for _, bar := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
		peak = max(peak, math.Abs(bar.Value))
	}
	room := max(width-labelWidth-16, 10)

	for _, bar := range c.Bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(bar.Value) / peak * float64(room)))
		}
		glyph := "█"
		if bar.Value < 0 {
			glyph = "░"
		}
		fmt.Fprintf(&b, "  %-*s ", labelWidth, bar.Label)
		b.WriteString(bandStyle(bar.Band).Render(strings.Repeat(glyph, n)))
		fmt.Fprintf(&b, " %g%s\n", bar.Value, c.Unit)
	}
	return b.String()
}
