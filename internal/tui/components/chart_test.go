package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/tui/theme"
)

var revenue = []float64{5, 6, 7.2, 8.64, 10.368}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{10.368, 2},
		{100, 20},
		{4, 0.5},
		{0, 1},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0.5:    "0.50",
		2:      "2",
		2.5:    "2.5",
		12:     "12",
		1500:   "1.5B",
		2000:   "2B",
		3.5e6:  "3.5T",
	}
	for v, want := range tests {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBarChartFitsWidth(t *testing.T) {
	out := BarChart(revenue, []string{"Y1", "Y2", "Y3", "Y4", "Y5"}, theme.Active.Blue, 40, 8)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d width %d exceeds 40", i, w)
		}
	}
	if !strings.Contains(out, "Y5") {
		t.Error("last label missing")
	}
}

func TestBarChartSmallFallsBackToSparkline(t *testing.T) {
	out := BarChart(revenue, nil, theme.Active.Blue, 10, 2)
	if strings.Contains(out, "\n") {
		t.Errorf("expected single-line sparkline, got %q", out)
	}
}

func TestLineChartIncludesLegend(t *testing.T) {
	out := LineChart([]Series{
		{Name: "Projected", Values: revenue, Color: theme.Active.Blue, Glyph: '●'},
		{Name: "Trend", Values: revenue, Color: theme.Active.Orange, Glyph: '◆'},
	}, []string{"1", "2", "3", "4", "5"}, 50, 10)

	for _, want := range []string{"Projected", "Trend", "●", "◆"} {
		if !strings.Contains(out, want) {
			t.Errorf("line chart missing %q", want)
		}
	}
}

func TestInterpolateHitsPoints(t *testing.T) {
	cols := pointColumns(len(revenue), 21)
	got := interpolate(revenue, cols, 21)
	for i, c := range cols {
		if got[c] != revenue[i] {
			t.Errorf("column %d = %v, want %v", c, got[c], revenue[i])
		}
	}
}

func TestPlaceLabelsKeepsLast(t *testing.T) {
	got := placeLabels([]string{"first", "second", "last"}, []int{0, 3, 10}, 12)
	if !strings.HasPrefix(got, "first") || !strings.HasSuffix(got, "last") {
		t.Errorf("placeLabels = %q", got)
	}
	if strings.Contains(got, "second") {
		t.Errorf("overlapping label not skipped: %q", got)
	}
}

func TestHistogramMergesBins(t *testing.T) {
	s := simulate.Run(30, simulate.Options{Samples: 500, SpreadPercent: 20, Seed: 3})
	sum := simulate.Summarize(s, 50)

	out := Histogram(sum.Bins, theme.Active.Accent, 40, 8)
	if out == "" {
		t.Fatal("empty histogram")
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d width %d exceeds 40", i, w)
		}
	}
}

func TestBoxPlotMarksMedian(t *testing.T) {
	sum := simulate.Summarize(simulate.Sample{Values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}}, 10)
	out := BoxPlot(sum, theme.Active.Accent, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("BoxPlot lines = %d, want 2", len(lines))
	}
	for _, glyph := range []string{"┃", "•", "├"} {
		if !strings.Contains(lines[0], glyph) {
			t.Errorf("box line missing %q: %q", glyph, lines[0])
		}
	}
}

func TestFunnelWidths(t *testing.T) {
	out := Funnel([]Stage{
		{Label: "Year 1", Value: 5, Display: "$5.00M"},
		{Label: "Year 2", Value: 10, Display: "$10.00M"},
	}, theme.Active.Blue, 40)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Errorf("uneven funnel rows: %d vs %d", lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	}
}

func TestTabVisualWidth(t *testing.T) {
	for i, tab := range Tabs {
		if got, want := TabVisualWidth(tab, false), len(tab.Name)+2; got != want {
			t.Errorf("tab %d inactive width = %d, want %d", i, got, want)
		}
		if got, want := TabVisualWidth(tab, true), len(tab.Name)+2; got != want {
			t.Errorf("tab %d active width = %d, want %d", i, got, want)
		}
	}
	if TabIdxByKey('s') != TabSimulation || TabIdxByKey('z') != -1 {
		t.Error("TabIdxByKey mismatch")
	}
}
