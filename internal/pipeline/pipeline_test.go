package pipeline

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
)

func TestRunSharesOneSample(t *testing.T) {
	a, err := Run(model.DefaultInputs(), simulate.Options{Samples: 400, SpreadPercent: 20, Seed: 11}, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Summary.N != len(a.Sample.Values) {
		t.Errorf("summary N = %d, sample has %d", a.Summary.N, len(a.Sample.Values))
	}
	if a.Sample.Center != a.Result.DCFValuation {
		t.Errorf("sample centered on %v, want DCF %v", a.Sample.Center, a.Result.DCFValuation)
	}
	if len(a.Shares) != len(a.Result.Projection) {
		t.Errorf("shares = %d, projection = %d", len(a.Shares), len(a.Result.Projection))
	}
	if len(a.Summary.Bins) != 20 {
		t.Errorf("bins = %d, want 20", len(a.Summary.Bins))
	}
}

func TestRunRejectsInvalidInputs(t *testing.T) {
	in := model.DefaultInputs()
	in.IndustryMultiple = 0.5
	if _, err := Run(in, simulate.DefaultOptions(), 0); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := Run(model.DefaultInputs(), simulate.Options{}, 0); err == nil {
		t.Fatal("Run accepted zero samples")
	}
}

func TestRunNearFloatLimit(t *testing.T) {
	opts := simulate.Options{Samples: 1000, SpreadPercent: 20, Seed: 1}

	in := model.DefaultInputs()
	in.AnnualRevenue = 1e308
	if _, err := Run(in, opts, 10); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("revenue 1e308: err = %v, want ErrInvalidInput", err)
	}

	// DCF stays finite here but with a 2000% spread the tails of the
	// draws overflow.
	in.AnnualRevenue = 1e306
	opts.SpreadPercent = 2000
	a, err := Run(in, opts, 10)
	if err != nil {
		t.Fatalf("revenue 1e306: %v", err)
	}
	if a.Summary.NonFinite == 0 {
		t.Errorf("expected overflowing draws, got none")
	}
	if a.Summary.N+a.Summary.NonFinite != opts.Samples {
		t.Errorf("N %d + NonFinite %d != %d draws", a.Summary.N, a.Summary.NonFinite, opts.Samples)
	}
	if math.IsInf(a.Summary.Mean, 0) || math.IsNaN(a.Summary.StdDev) {
		t.Errorf("summary not finite: mean %v, stddev %v", a.Summary.Mean, a.Summary.StdDev)
	}
}

func TestAxis(t *testing.T) {
	got := Axis(10, 2.5, 5, 20, 5)
	want := []float64{5, 7.5, 10, 12.5, 15}
	if len(got) != len(want) {
		t.Fatalf("Axis = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Axis[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	clipped := Axis(5, 2.5, 5, 20, 5)
	if clipped[0] != 5 || len(clipped) != 3 {
		t.Errorf("clipped Axis = %v", clipped)
	}
}

func TestSweepGrid(t *testing.T) {
	growths := []float64{10, 20, 30}
	discounts := []float64{5, 10, 15, 20}

	var calls atomic.Int64
	grid, err := Sweep(model.DefaultInputs(), growths, discounts, func(current, total int) {
		calls.Add(1)
		if total != 12 {
			t.Errorf("total = %d, want 12", total)
		}
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(grid.Cells) != 12 || calls.Load() != 12 {
		t.Fatalf("cells = %d, progress calls = %d", len(grid.Cells), calls.Load())
	}

	ref := grid.At(1, 1)
	if ref.GrowthRatePercent != 20 || ref.DiscountRatePercent != 10 {
		t.Fatalf("At(1,1) = %+v", ref)
	}
	if math.Abs(ref.DCFValuation-29.9778) > 1e-3 {
		t.Errorf("reference DCF = %v, want ~29.9778", ref.DCFValuation)
	}

	for i := range growths {
		for j := 1; j < len(discounts); j++ {
			if grid.At(i, j).DCFValuation >= grid.At(i, j-1).DCFValuation {
				t.Errorf("DCF not decreasing in discount at growth %v", growths[i])
			}
		}
	}
	for j := range discounts {
		for i := 1; i < len(growths); i++ {
			if grid.At(i, j).DCFValuation <= grid.At(i-1, j).DCFValuation {
				t.Errorf("DCF not increasing in growth at discount %v", discounts[j])
			}
		}
	}
}

func TestSweepRejectsOutOfRangeAxis(t *testing.T) {
	_, err := Sweep(model.DefaultInputs(), []float64{20}, []float64{2}, nil)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func BenchmarkRun(b *testing.B) {
	in := model.DefaultInputs()
	opts := simulate.DefaultOptions()
	opts.Seed = 1
	for b.Loop() {
		if _, err := Run(in, opts, simulate.DefaultBins); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSweep(b *testing.B) {
	growths := Axis(20, 5, 1, 100, 9)
	discounts := Axis(10, 1, 5, 20, 9)
	for b.Loop() {
		if _, err := Sweep(model.DefaultInputs(), growths, discounts, nil); err != nil {
			b.Fatal(err)
		}
	}
}
