package simulate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Summary holds descriptive statistics for a sample plus the data needed
// for the histogram and box charts.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`

	// Tukey whiskers: the most extreme values within 1.5 IQR of the quartiles.
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     int     `json:"outliers"`

	// NonFinite counts NaN or infinite draws excluded from the statistics.
	NonFinite int `json:"non_finite,omitempty"`

	Bins []Bin `json:"bins"`
}

// scaleAbove is the magnitude past which sums of squares would overflow,
// so moments and bins are computed on values scaled into [-1, 1].
const scaleAbove = 1e150

// Summarize computes statistics over s.Values. bins <= 0 uses DefaultBins.
// NaN and infinite draws are left out of every statistic and counted in
// NonFinite.
func Summarize(s Sample, bins int) Summary {
	if bins <= 0 {
		bins = DefaultBins
	}

	x := make([]float64, 0, len(s.Values))
	nonFinite := 0
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			nonFinite++
			continue
		}
		x = append(x, v)
	}
	n := len(x)
	if n == 0 {
		return Summary{NonFinite: nonFinite}
	}
	sort.Float64s(x)

	scale := math.Max(math.Abs(x[0]), math.Abs(x[n-1]))
	scaled := x
	if scale > scaleAbove {
		scaled = make([]float64, n)
		floats.ScaleTo(scaled, 1/scale, x)
	} else {
		scale = 1
	}

	sum := Summary{
		N:         n,
		NonFinite: nonFinite,
		Mean:      stat.Mean(scaled, nil) * scale,
		Min:       x[0],
		Max:       x[n-1],
		Q1:        stat.Quantile(0.25, stat.Empirical, x, nil),
		Median:    stat.Quantile(0.5, stat.Empirical, x, nil),
		Q3:        stat.Quantile(0.75, stat.Empirical, x, nil),
	}
	if n > 1 {
		sum.StdDev = stat.StdDev(scaled, nil) * scale
	}

	iqr := sum.Q3 - sum.Q1
	loFence := sum.Q1 - 1.5*iqr
	hiFence := sum.Q3 + 1.5*iqr
	sum.LowerWhisker = sum.Max
	sum.UpperWhisker = sum.Min
	for _, v := range x {
		if v < loFence || v > hiFence {
			sum.Outliers++
			continue
		}
		sum.LowerWhisker = math.Min(sum.LowerWhisker, v)
		sum.UpperWhisker = math.Max(sum.UpperWhisker, v)
	}

	sum.Bins = histogram(scaled, scale, bins)
	return sum
}

// histogram buckets sorted x into equal-width bins spanning [min, max].
// Bin bounds are reported multiplied by scale and clamped to finite values.
func histogram(x []float64, scale float64, bins int) []Bin {
	lo, hi := x[0], x[len(x)-1]
	if hi <= lo {
		hi = lo + 1
	}
	// stat.Histogram wants every value strictly below the last divider.
	hi = math.Nextafter(hi, math.Inf(1))

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	counts := stat.Histogram(nil, dividers, x, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{
			Lo:    clampFinite(dividers[i] * scale),
			Hi:    clampFinite(dividers[i+1] * scale),
			Count: int(counts[i]),
		}
	}
	return out
}

func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(v, math.MaxFloat64))
}

// Counts returns the histogram counts as floats for charting.
func (s Summary) Counts() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = float64(b.Count)
	}
	return out
}
