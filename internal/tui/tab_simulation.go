package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSimulationTab(cw int) string {
	t := theme.Active
	sum := a.analysis.Summary
	sample := a.analysis.Sample
	var b strings.Builder

	metrics := []components.Metric{
		{Label: "Mean", Value: cli.FormatMillions(sum.Mean), Note: fmt.Sprintf("centre %s", cli.FormatMillions(sample.Center))},
		{Label: "Std Dev", Value: cli.FormatMillions(sum.StdDev), Note: fmt.Sprintf("sigma %s", cli.FormatMillions(sample.Sigma))},
		{Label: "Median", Value: cli.FormatMillions(sum.Median), Note: "IQR " + cli.FormatMillions(sum.Q3-sum.Q1)},
		{Label: "Draws", Value: cli.FormatNumber(int64(sum.N)), Note: fmt.Sprintf("%d outliers", sum.Outliers)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Monte Carlo Valuation Distribution (%d bins)", len(sum.Bins)),
		components.Histogram(sum.Bins, t.Accent, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	var quart strings.Builder
	for i, r := range []struct {
		label string
		v     float64
	}{
		{"Min", sum.Min},
		{"Lower whisker", sum.LowerWhisker},
		{"Q1", sum.Q1},
		{"Median", sum.Median},
		{"Q3", sum.Q3},
		{"Upper whisker", sum.UpperWhisker},
		{"Max", sum.Max},
	} {
		if i > 0 {
			quart.WriteString("\n")
		}
		quart.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r.label)))
		quart.WriteString(valueStyle.Render(cli.FormatMillions(r.v)))
	}

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Valuation Spread", components.BoxPlot(sum, t.Magenta, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Quartiles", quart.String(), cw))
		return b.String()
	}
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Valuation Spread", components.BoxPlot(sum, t.Magenta, components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Quartiles", quart.String(), halves[1]),
	}))
	return b.String()
}
