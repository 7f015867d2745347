package components

import (
	"strings"

	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tab indexes, in display order.
const (
	TabOverview = iota
	TabRevenue
	TabSimulation
	TabAdvisor
	TabSettings
)

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Revenue", Key: 'v', KeyPos: 2},
	{Name: "Simulation", Key: 's', KeyPos: 0},
	{Name: "Advisor", Key: 'a', KeyPos: 0},
	{Name: "Settings", Key: 't', KeyPos: 2},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceBright).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Underline(true)
	pad := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	if active {
		return activeStyle.Render(tab.Name)
	}
	if tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name) {
		return pad + inactiveStyle.Render(tab.Name) +
			inactiveStyle.Render("[") + keyStyle.Render(string(tab.Key)) + inactiveStyle.Render("]") + pad
	}
	return pad +
		inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
		keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		inactiveStyle.Render(tab.Name[tab.KeyPos+1:]) +
		pad
}

// TabVisualWidth returns the rendered width of tab, used for mouse hit tests.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("│")

	row := lipgloss.NewStyle().Background(t.Surface).Width(width)
	return row.Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
