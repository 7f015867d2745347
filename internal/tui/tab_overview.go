package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	res := a.analysis.Result
	in := res.Inputs
	var b strings.Builder

	taglineStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Italic(true)
	b.WriteString(taglineStyle.Render(" " + advisor.Tagline))
	b.WriteString("\n")

	// Row 1: metric cards
	projected := res.ProjectedSeries()
	final := 0.0
	if len(projected) > 0 {
		final = projected[len(projected)-1]
	}
	metrics := []components.Metric{
		{Label: "Annual Revenue", Value: cli.FormatMillions(in.AnnualRevenue), Note: cli.FormatPercent(in.GrowthRatePercent) + " growth"},
		{Label: "Multiple Valuation", Value: cli.FormatMillions(res.MultipleValuation), Note: cli.FormatMultiple(in.IndustryMultiple) + " revenue"},
		{Label: "DCF Valuation", Value: cli.FormatMillions(res.DCFValuation), Note: cli.FormatPercent(in.DiscountRatePercent) + " discount"},
		{Label: "Final-Year Revenue", Value: cli.FormatMillions(final), Note: cli.YearLabel(len(projected))},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: headline range, multiple first
	b.WriteString(components.RangeBanner("Estimated Valuation Range",
		cli.FormatMillions(res.MultipleValuation), cli.FormatMillions(res.DCFValuation), cw))
	b.WriteString("\n")

	// Row 3: projection chart + assumptions
	series := []components.Series{
		{Name: "Projected", Values: projected, Color: t.Projected, Glyph: '●'},
		{Name: "AI trend", Values: res.FittedSeries(), Color: t.Fitted, Glyph: '◆'},
	}
	labels := yearLabels(len(projected))

	assumptions := a.renderAssumptions()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Revenue Projection ($M)",
			components.LineChart(series, labels, components.CardInnerWidth(cw), 10), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Assumptions", assumptions, cw))
		return b.String()
	}

	widths := []int{cw * 2 / 3, cw - cw*2/3}
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Revenue Projection ($M)",
			components.LineChart(series, labels, components.CardInnerWidth(widths[0]), 10), widths[0]),
		components.ContentCard("Assumptions", assumptions, widths[1]),
	}))
	return b.String()
}

func (a App) renderAssumptions() string {
	t := theme.Active
	in := a.analysis.Result.Inputs

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	rows := []struct{ label, value string }{
		{"Revenue", cli.FormatMillions(in.AnnualRevenue)},
		{"Growth", cli.FormatPercent(in.GrowthRatePercent)},
		{"Profit margin", cli.FormatPercent(in.ProfitMarginPercent)},
		{"Multiple", cli.FormatMultiple(in.IndustryMultiple)},
		{"Discount", cli.FormatPercent(in.DiscountRatePercent)},
		{"Horizon", fmt.Sprintf("%d years", in.HorizonYears)},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[e] edit  margin is informational"))
	return b.String()
}

// yearLabels returns compact X-axis labels "Y1".."Yn".
func yearLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Y%d", i+1)
	}
	return labels
}
