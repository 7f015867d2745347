// Package pipeline runs the full valuation flow shared by the CLI, the
// dashboard and the HTTP service: validate, project, fit, value, simulate.
package pipeline

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/valuation"
)

// Analysis is everything derived from one set of inputs.
type Analysis struct {
	Result  model.Result     `json:"result"`
	Sample  simulate.Sample  `json:"-"`
	Summary simulate.Summary `json:"simulation"`
	Shares  []float64        `json:"revenue_shares"`
}

// Run computes the valuation for in and draws one Monte Carlo sample around
// the DCF figure. bins <= 0 uses the default histogram resolution.
func Run(in model.Inputs, opts simulate.Options, bins int) (Analysis, error) {
	res, err := valuation.Compute(in)
	if err != nil {
		return Analysis{}, err
	}
	if opts.Samples < 1 {
		return Analysis{}, fmt.Errorf("simulation samples must be positive, got %d", opts.Samples)
	}

	sample := simulate.Run(res.DCFValuation, opts)
	return Analysis{
		Result:  res,
		Sample:  sample,
		Summary: simulate.Summarize(sample, bins),
		Shares:  simulate.RevenueShares(res.ProjectedSeries()),
	}, nil
}
