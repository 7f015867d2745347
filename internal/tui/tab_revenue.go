package tui

import (
	"strings"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"
)

func (a App) renderRevenueTab(cw int) string {
	t := theme.Active
	res := a.analysis.Result
	projected := res.ProjectedSeries()
	labels := yearLabels(len(projected))
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	bar := components.ContentCard("Projected Revenue by Year ($M)",
		components.BarChart(projected, labels, t.Projected, components.CardInnerWidth(halves[0]), chartH), halves[0])
	area := components.ContentCard("Revenue Growth Area ($M)",
		components.AreaChart(projected, labels, t.Accent, components.CardInnerWidth(halves[1]), chartH), halves[1])

	scatter := components.ContentCard("Projected vs AI Trend ($M)",
		components.ScatterChart([]components.Series{
			{Name: "Projected", Values: projected, Color: t.Projected, Glyph: '●'},
			{Name: "AI trend", Values: res.FittedSeries(), Color: t.Fitted, Glyph: '◆'},
		}, labels, components.CardInnerWidth(halves[0]), chartH), halves[0])

	stages := make([]components.Stage, len(res.Projection))
	for i, row := range res.Projection {
		stages[i] = components.Stage{
			Label:   cli.YearLabel(row.Year),
			Value:   row.ProjectedRevenue,
			Display: cli.FormatMillions(row.ProjectedRevenue),
		}
	}
	funnel := components.ContentCard("Revenue Funnel",
		components.Funnel(stages, t.Blue, components.CardInnerWidth(halves[1])), halves[1])

	innerW := components.CardInnerWidth(cw)
	labelW := len(cli.YearLabel(len(projected)))
	barW := max(innerW-labelW-9, 4)
	var shares strings.Builder
	for i, s := range a.analysis.Shares {
		shares.WriteString(components.ShareBar(cli.YearLabel(i+1), s/100, labelW, barW))
		if i < len(a.analysis.Shares)-1 {
			shares.WriteString("\n")
		}
	}
	share := components.ContentCard("Revenue Share by Year", shares.String(), cw)

	var b strings.Builder
	if a.isCompactLayout() {
		for _, card := range []string{bar, area, scatter, funnel} {
			b.WriteString(card)
			b.WriteString("\n")
		}
	} else {
		b.WriteString(components.CardRow([]string{bar, area}))
		b.WriteString("\n")
		b.WriteString(components.CardRow([]string{scatter, funnel}))
		b.WriteString("\n")
	}
	b.WriteString(share)
	return b.String()
}
