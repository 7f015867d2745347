package components

import (
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a transient message in the middle and run details on the right.
func RenderStatusBar(width int, flash, details string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	flashStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	left := " [?]help  [e]dit  [x]export  [r]eseed  [q]uit"
	right := ""
	if details != "" {
		right = details + " "
	}
	middle := ""
	if flash != "" {
		middle = "  " + flash
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(right), 0)
	filler := lipgloss.NewStyle().Background(t.Surface).Render(spaces(gap))

	return style.Render(left + flashStyle.Render(middle) + filler + right)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
