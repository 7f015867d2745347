package simulate

import (
	"math"
	"testing"
)

func TestSummarize_HistogramCountsSumToN(t *testing.T) {
	s := Run(30, Options{Samples: 1000, SpreadPercent: 20, Seed: 11})
	sum := Summarize(s, DefaultBins)

	if len(sum.Bins) != DefaultBins {
		t.Fatalf("bins = %d, want %d", len(sum.Bins), DefaultBins)
	}
	total := 0
	for _, b := range sum.Bins {
		total += b.Count
	}
	if total != 1000 {
		t.Fatalf("histogram total = %d, want 1000", total)
	}
	if sum.Bins[0].Lo != sum.Min {
		t.Errorf("first bin Lo = %v, want min %v", sum.Bins[0].Lo, sum.Min)
	}
	if sum.Bins[len(sum.Bins)-1].Hi <= sum.Max {
		t.Errorf("last bin Hi = %v, must exceed max %v", sum.Bins[len(sum.Bins)-1].Hi, sum.Max)
	}
}

func TestSummarize_OrderStatistics(t *testing.T) {
	s := Sample{Values: []float64{9, 1, 5, 3, 7, 2, 8, 4, 6, 100}}
	sum := Summarize(s, 4)

	if sum.N != 10 {
		t.Fatalf("N = %d, want 10", sum.N)
	}
	if sum.Min != 1 || sum.Max != 100 {
		t.Errorf("min/max = %v/%v, want 1/100", sum.Min, sum.Max)
	}
	if !(sum.Q1 <= sum.Median && sum.Median <= sum.Q3) {
		t.Errorf("quartiles out of order: %v %v %v", sum.Q1, sum.Median, sum.Q3)
	}
	if sum.Outliers != 1 {
		t.Errorf("Outliers = %d, want 1 (the 100)", sum.Outliers)
	}
	if sum.UpperWhisker != 9 {
		t.Errorf("UpperWhisker = %v, want 9", sum.UpperWhisker)
	}
	if sum.LowerWhisker != 1 {
		t.Errorf("LowerWhisker = %v, want 1", sum.LowerWhisker)
	}
	if math.Abs(sum.Mean-14.5) > 1e-12 {
		t.Errorf("Mean = %v, want 14.5", sum.Mean)
	}
}

func TestSummarize_DoesNotReorderSample(t *testing.T) {
	s := Sample{Values: []float64{3, 1, 2}}
	Summarize(s, 2)
	if s.Values[0] != 3 || s.Values[1] != 1 || s.Values[2] != 2 {
		t.Fatalf("sample mutated: %v", s.Values)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(Sample{}, 10)
	if sum.N != 0 || sum.Bins != nil {
		t.Fatalf("empty summary = %+v", sum)
	}
}

func TestRevenueShares(t *testing.T) {
	got := RevenueShares([]float64{1, 1, 2})
	want := []float64{25, 25, 50}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("share[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	zero := RevenueShares([]float64{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Fatalf("zero total shares = %v", zero)
	}
}

func TestSummarize_SkipsNonFiniteDraws(t *testing.T) {
	s := Sample{Values: []float64{2, math.Inf(1), 4, math.NaN(), 6, math.Inf(-1)}}
	sum := Summarize(s, 3)

	if sum.N != 3 || sum.NonFinite != 3 {
		t.Fatalf("N = %d, NonFinite = %d, want 3 and 3", sum.N, sum.NonFinite)
	}
	if sum.Mean != 4 || sum.Min != 2 || sum.Max != 6 {
		t.Errorf("summary = %+v", sum)
	}

	none := Summarize(Sample{Values: []float64{math.NaN(), math.Inf(1)}}, 3)
	if none.N != 0 || none.NonFinite != 2 || none.Bins != nil {
		t.Errorf("all non-finite summary = %+v", none)
	}
}

func TestSummarize_NearFloatLimitStaysFinite(t *testing.T) {
	big := math.MaxFloat64
	tests := []struct {
		name   string
		values []float64
	}{
		{"span overflows", []float64{-big, -big / 2, 0, big / 2, big}},
		{"sum overflows", []float64{big, big * 0.9, big * 0.8, big * 0.7}},
		{"all equal at limit", []float64{big, big, big}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Summarize(Sample{Values: tt.values}, 4)

			for name, v := range map[string]float64{
				"mean": sum.Mean, "stddev": sum.StdDev, "q1": sum.Q1, "q3": sum.Q3,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("%s = %v, want finite", name, v)
				}
			}
			total := 0
			for _, b := range sum.Bins {
				if math.IsInf(b.Lo, 0) || math.IsInf(b.Hi, 0) {
					t.Errorf("bin bounds not finite: %+v", b)
				}
				total += b.Count
			}
			if total != len(tt.values) {
				t.Errorf("histogram total = %d, want %d", total, len(tt.values))
			}
		})
	}
}
