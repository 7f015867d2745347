package components

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForShare grades a share in [0, 1] from cool to warm so the
// heaviest years stand out.
func ColorForShare(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.3:
		return t.Orange
	case pct >= 0.2:
		return t.Yellow
	case pct >= 0.1:
		return t.Green
	default:
		return t.Cyan
	}
}

// ShareBar renders a labelled progress bar for a share in [0, 1] followed
// by its percentage.
func ShareBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	color := ColorForShare(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100))
}
