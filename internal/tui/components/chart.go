package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * 7)
		idx = min(max(idx, 0), 7)
		buf.WriteRune(blocks[idx+1])
	}
	return style.Render(buf.String())
}

// yScale maps values onto chart rows. Row 1 is the bottom row and row
// height the top; row r covers values in (ceiling*(r-1)/height, ceiling*r/height].
type yScale struct {
	ceiling float64
	height  int
	labelW  int
	ticks   map[int]string
}

func newYScale(maxVal float64, height int, format func(float64) string) yScale {
	if maxVal <= 0 {
		maxVal = 1
	}

	step := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(maxVal/step) * step
	intervals := max(int(math.Round(ceiling/step)), 1)
	rowsPerTick := max(height/intervals, 2)

	s := yScale{
		ceiling: ceiling,
		height:  rowsPerTick * intervals,
		ticks:   make(map[int]string, intervals),
	}
	for i := 1; i <= intervals; i++ {
		s.ticks[i*rowsPerTick] = format(step * float64(i))
	}
	s.labelW = max(len(format(ceiling))+1, 4)
	return s
}

// row returns the 1-based row whose band contains v, or 0 for v <= 0.
func (s yScale) row(v float64) int {
	if v <= 0 {
		return 0
	}
	return min(int(math.Ceil(v/s.ceiling*float64(s.height))), s.height)
}

func (s yScale) bounds(row int) (lo, hi float64) {
	return s.ceiling * float64(row-1) / float64(s.height), s.ceiling * float64(row) / float64(s.height)
}

// partial returns the block glyph for v within row, or 0 when v does not reach it.
func (s yScale) partial(v float64, row int) rune {
	lo, hi := s.bounds(row)
	switch {
	case v >= hi:
		return '█'
	case v > lo:
		idx := int((v - lo) / (hi - lo) * 8)
		return blocks[min(max(idx, 1), 8)]
	default:
		return 0
	}
}

func (s yScale) axis(row int) string {
	return fmt.Sprintf("%*s", s.labelW, s.ticks[row]) + "│"
}

// BarChart renders a bar chart of dollar amounts (in millions) with a
// labelled Y axis and optional X labels. It falls back to a sparkline when
// the area is too small.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	return barChart(values, labels, color, width, height, formatChartLabel)
}

func barChart(values []float64, labels []string, color lipgloss.Color, width, height int, format func(float64) string) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	sc := newYScale(peak, height, format)

	chartW := max(width-sc.labelW-1, 5)
	n := len(values)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		values, labels = resample(values, labels, max((chartW+1)/3, 2))
		n = len(values)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := sc.height; row >= 1; row-- {
		rowPct := float64(row) / float64(sc.height)
		barColor := t.Accent
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(sc.axis(row)))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			if g := sc.partial(v, row); g != 0 {
				b.WriteString(barStyle.Render(strings.Repeat(string(g), barW)))
			} else {
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", sc.labelW, "0") + "└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		pos := make([]int, n)
		for i := range pos {
			pos[i] = i * (barW + gap)
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", sc.labelW+1)))
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(placeLabels(labels, pos, axisLen)))
	}

	return b.String()
}

// resample picks n evenly spaced points from values (and labels when they
// line up with values).
func resample(values []float64, labels []string, n int) ([]float64, []string) {
	src := len(values)
	out := make([]float64, n)
	var outLabels []string
	if len(labels) == src {
		outLabels = make([]string, n)
	}
	for i := range out {
		j := i * (src - 1) / (n - 1)
		out[i] = values[j]
		if outLabels != nil {
			outLabels[i] = labels[j]
		}
	}
	return out, outLabels
}

// placeLabels lays labels out on a line of width w at the given columns,
// skipping any that would collide with the previous one. The last label is
// always placed, right-aligned if needed.
func placeLabels(labels []string, pos []int, w int) string {
	if w <= 0 {
		return ""
	}
	buf := []rune(strings.Repeat(" ", w))
	lastEnd := -1
	put := func(p int, lbl string) {
		r := []rune(lbl)
		if p+len(r) > w {
			p = w - len(r)
		}
		if p < 0 || p <= lastEnd {
			return
		}
		copy(buf[p:], r)
		lastEnd = p + len(r)
	}

	n := len(labels)
	for i := 0; i < n-1; i++ {
		if labels[i] == "" {
			continue
		}
		// keep room for the final label
		if n > 1 && pos[i]+len([]rune(labels[i])) >= pos[n-1] {
			continue
		}
		put(pos[i], labels[i])
	}
	if n > 0 {
		put(pos[n-1], labels[n-1])
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "T"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "B"
	case v >= 10:
		return fmt.Sprintf("%.0f", v)
	case v >= 1:
		return trimZero(fmt.Sprintf("%.1f", v))
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
