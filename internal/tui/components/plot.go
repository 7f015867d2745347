package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named line or point set on a plot.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
	Glyph  rune
}

// Stage is one row of a funnel chart.
type Stage struct {
	Label   string
	Value   float64
	Display string
}

type plotCell struct {
	r     rune
	color lipgloss.Color
}

// canvas is a character grid addressed by column and 1-based row from the
// bottom, matching yScale rows.
type canvas struct {
	w, h  int
	cells [][]plotCell
}

func newCanvas(w, h int) canvas {
	cells := make([][]plotCell, h)
	for i := range cells {
		cells[i] = make([]plotCell, w)
	}
	return canvas{w: w, h: h, cells: cells}
}

func (c canvas) set(col, row int, r rune, color lipgloss.Color) {
	if col < 0 || col >= c.w || row < 1 || row > c.h {
		return
	}
	c.cells[row-1][col] = plotCell{r: r, color: color}
}

func (c canvas) render(sc yScale, labels []string, cols []int) string {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := c.h; row >= 1; row-- {
		b.WriteString(axisStyle.Render(sc.axis(row)))
		for _, cell := range c.cells[row-1] {
			if cell.r == 0 {
				b.WriteString(blank.Render(" "))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(cell.color).Background(t.Surface).Render(string(cell.r)))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", sc.labelW, "0") + "└" + strings.Repeat("─", c.w)))

	if len(labels) == len(cols) && len(labels) > 0 {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", sc.labelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, cols, c.w)))
	}
	return b.String()
}

// pointColumns spreads n points evenly across w columns.
func pointColumns(n, w int) []int {
	cols := make([]int, n)
	if n == 1 {
		cols[0] = w / 2
		return cols
	}
	for i := range cols {
		cols[i] = i * (w - 1) / (n - 1)
	}
	return cols
}

// interpolate returns one value per column by linear interpolation between
// the points at cols.
func interpolate(values []float64, cols []int, w int) []float64 {
	out := make([]float64, w)
	if len(values) == 0 {
		return out
	}
	for i := 0; i+1 < len(values); i++ {
		x0, x1 := cols[i], cols[i+1]
		for x := x0; x <= x1 && x < w; x++ {
			switch {
			case x == x1:
				out[x] = values[i+1]
			case x == x0:
				out[x] = values[i]
			default:
				frac := float64(x-x0) / float64(x1-x0)
				out[x] = values[i] + (values[i+1]-values[i])*frac
			}
		}
	}
	if len(values) == 1 {
		out[cols[0]] = values[0]
	}
	return out
}

func seriesPeak(series []Series) float64 {
	peak := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			peak = max(peak, v)
		}
	}
	return peak
}

func plot(series []Series, labels []string, width, height int, connect bool) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	sc := newYScale(seriesPeak(series), height, formatChartLabel)
	w := max(width-sc.labelW-1, 5)
	cv := newCanvas(w, sc.height)

	for _, s := range series {
		cols := pointColumns(len(s.Values), w)
		if connect {
			for x, v := range interpolate(s.Values, cols, w) {
				if x < cols[0] || x > cols[len(cols)-1] {
					continue
				}
				cv.set(x, sc.row(v), '·', s.Color)
			}
		}
		for i, v := range s.Values {
			cv.set(cols[i], max(sc.row(v), 1), s.Glyph, s.Color)
		}
	}

	out := cv.render(sc, labels, pointColumns(len(labels), w))
	return out + "\n" + Legend(series)
}

// LineChart plots each series as points joined by dotted segments.
func LineChart(series []Series, labels []string, width, height int) string {
	return plot(series, labels, width, height, true)
}

// ScatterChart plots each series as unconnected points.
func ScatterChart(series []Series, labels []string, width, height int) string {
	return plot(series, labels, width, height, false)
}

// Legend renders one glyph and name per series.
func Legend(series []Series) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(string(s.Glyph)) +
			blank.Render(" ") + nameStyle.Render(s.Name)
	}
	return strings.Join(parts, blank.Render("   "))
}

// AreaChart fills the region under values, interpolated across the width.
func AreaChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	sc := newYScale(peak, height, formatChartLabel)
	w := max(width-sc.labelW-1, 5)
	cv := newCanvas(w, sc.height)

	cols := pointColumns(len(values), w)
	for x, v := range interpolate(values, cols, w) {
		if x < cols[0] || x > cols[len(cols)-1] {
			continue
		}
		for row := 1; row <= sc.height; row++ {
			g := sc.partial(v, row)
			if g == 0 {
				break
			}
			cv.set(x, row, g, color)
		}
	}
	return cv.render(sc, labels, pointColumns(len(labels), w))
}

// Histogram renders simulation bins as a bar chart, merging adjacent bins
// until they fit the width.
func Histogram(bins []simulate.Bin, color lipgloss.Color, width, height int) string {
	if len(bins) == 0 {
		return ""
	}
	maxBars := max((width-6)/3, 2)
	group := int(math.Ceil(float64(len(bins)) / float64(maxBars)))

	var counts []float64
	var labels []string
	for i := 0; i < len(bins); i += group {
		end := min(i+group, len(bins))
		total := 0
		for _, bn := range bins[i:end] {
			total += bn.Count
		}
		counts = append(counts, float64(total))
		labels = append(labels, formatChartLabel(bins[i].Lo))
	}
	return barChart(counts, labels, color, width, height, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
}

// BoxPlot renders a one-line box-and-whisker chart of s scaled to width,
// with the extremes and median labelled underneath.
func BoxPlot(s simulate.Summary, color lipgloss.Color, width int) string {
	if s.N == 0 || width < 10 {
		return ""
	}
	t := theme.Active

	lo, hi := s.Min, s.Max
	if hi <= lo {
		hi = lo + 1
	}
	pos := func(v float64) int {
		p := int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
		return min(max(p, 0), width-1)
	}

	line := []rune(strings.Repeat(" ", width))
	for x := pos(s.LowerWhisker); x <= pos(s.UpperWhisker); x++ {
		line[x] = '─'
	}
	for x := pos(s.Q1); x <= pos(s.Q3); x++ {
		line[x] = '█'
	}
	line[pos(s.LowerWhisker)] = '├'
	line[pos(s.UpperWhisker)] = '┤'
	line[pos(s.Median)] = '┃'
	if s.Min < s.LowerWhisker {
		line[pos(s.Min)] = '•'
	}
	if s.Max > s.UpperWhisker {
		line[pos(s.Max)] = '•'
	}

	boxStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	median := formatChartLabel(s.Median)
	labels := []string{formatChartLabel(s.Min), median, formatChartLabel(s.Max)}
	cols := []int{0, max(pos(s.Median)-len(median)/2, 0), width - 1}

	return boxStyle.Render(string(line)) + "\n" + labelStyle.Render(placeLabels(labels, cols, width))
}

// Funnel renders stages as centered bars proportional to their values.
func Funnel(stages []Stage, color lipgloss.Color, width int) string {
	if len(stages) == 0 {
		return ""
	}
	t := theme.Active

	labelW, displayW := 0, 0
	peak := 0.0
	for _, st := range stages {
		labelW = max(labelW, lipgloss.Width(st.Label))
		displayW = max(displayW, lipgloss.Width(st.Display))
		peak = max(peak, st.Value)
	}
	barMax := max(width-labelW-displayW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, st := range stages {
		barLen := 0
		if peak > 0 {
			barLen = int(st.Value / peak * float64(barMax))
		}
		barLen = min(max(barLen, 1), barMax)
		left := (barMax - barLen) / 2
		right := barMax - barLen - left

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, st.Label)))
		b.WriteString(blank.Render(" " + strings.Repeat(" ", left)))
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(blank.Render(strings.Repeat(" ", right) + " "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", displayW, st.Display)))
		if i < len(stages)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
