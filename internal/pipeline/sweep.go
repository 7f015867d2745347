package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/valuation"
)

// MaxAxisPoints caps each sensitivity axis.
const MaxAxisPoints = 15

// ProgressFunc is called as sweep cells complete.
// current is the number of cells finished so far, total is the grid size.
type ProgressFunc func(current, total int)

// Cell is one point of a sensitivity grid.
type Cell struct {
	GrowthRatePercent   float64 `json:"growth_rate_percent"`
	DiscountRatePercent float64 `json:"discount_rate_percent"`
	DCFValuation        float64 `json:"dcf_valuation"`
	MultipleValuation   float64 `json:"multiple_valuation"`
}

// Grid holds DCF valuations for every growth x discount combination.
// Cells is row-major: Cells[i*len(Discounts)+j] pairs Growths[i] with Discounts[j].
type Grid struct {
	Growths   []float64 `json:"growth_rates"`
	Discounts []float64 `json:"discount_rates"`
	Cells     []Cell    `json:"cells"`
}

// At returns the cell for growth index i and discount index j.
func (g Grid) At(i, j int) Cell {
	return g.Cells[i*len(g.Discounts)+j]
}

// Axis returns up to n points centered on center and spaced by step,
// clipped to [lo, hi]. The center is always included.
func Axis(center, step, lo, hi float64, n int) []float64 {
	if n < 1 || step <= 0 {
		return []float64{center}
	}
	start := center - step*float64((n-1)/2)
	var out []float64
	for i := range n {
		v := start + step*float64(i)
		if v < lo || v > hi {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sweep values base at every growth x discount combination using a bounded
// worker pool. Every combination is validated; the first invalid one aborts
// the sweep before any work starts.
func Sweep(base model.Inputs, growths, discounts []float64, progressFn ProgressFunc) (Grid, error) {
	if len(growths) == 0 || len(discounts) == 0 {
		return Grid{}, errors.New("sweep needs at least one growth and one discount rate")
	}

	total := len(growths) * len(discounts)
	inputs := make([]model.Inputs, total)
	for i, g := range growths {
		for j, d := range discounts {
			in := base
			in.GrowthRatePercent = g
			in.DiscountRatePercent = d
			if err := in.Validate(); err != nil {
				return Grid{}, fmt.Errorf("sweep growth=%g discount=%g: %w", g, d, err)
			}
			inputs[i*len(discounts)+j] = in
		}
	}

	numWorkers := min(max(runtime.GOMAXPROCS(0), 1), total)

	work := make(chan int, total)
	for i := range inputs {
		work <- i
	}
	close(work)

	cells := make([]Cell, total)
	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for idx := range work {
				in := inputs[idx]
				series := valuation.ProjectRevenue(in)
				cells[idx] = Cell{
					GrowthRatePercent:   in.GrowthRatePercent,
					DiscountRatePercent: in.DiscountRatePercent,
					DCFValuation:        valuation.DCF(series, in.DiscountRatePercent),
					MultipleValuation:   valuation.MultipleValuation(in.AnnualRevenue, in.IndustryMultiple),
				}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), total)
				}
			}
		}()
	}
	wg.Wait()

	return Grid{Growths: growths, Discounts: discounts, Cells: cells}, nil
}
