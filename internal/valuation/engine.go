// Package valuation computes revenue projections and startup valuations.
package valuation

import (
	"fmt"
	"math"

	"github.com/theirongolddev/valuate/internal/model"
)

// ProjectRevenue compounds AnnualRevenue for HorizonYears periods.
// Entry i is AnnualRevenue * (1+g)^i, so entry 0 is the current revenue.
func ProjectRevenue(in model.Inputs) []float64 {
	n := in.HorizonYears
	if n <= 0 {
		return nil
	}
	growth := 1 + in.GrowthRatePercent/100

	out := make([]float64, n)
	for i := range out {
		out[i] = in.AnnualRevenue * math.Pow(growth, float64(i))
	}
	return out
}

// DCF discounts each period's value back to period 0 and sums them.
// No terminal value and no mid-year convention.
func DCF(series []float64, discountRatePercent float64) float64 {
	rate := 1 + discountRatePercent/100

	var pv float64
	for i, v := range series {
		pv += v / math.Pow(rate, float64(i))
	}
	return pv
}

// MultipleValuation prices the company at revenue times the industry multiple.
func MultipleValuation(revenue, multiple float64) float64 {
	return revenue * multiple
}

// Compute validates the inputs and produces the projection table and both
// valuations. Invalid inputs are rejected before any computation.
func Compute(in model.Inputs) (model.Result, error) {
	if err := in.Validate(); err != nil {
		return model.Result{}, fmt.Errorf("valuation: %w", err)
	}

	projected := ProjectRevenue(in)
	fitted := FitCurve(projected)

	rows := make([]model.ProjectionRow, len(projected))
	for i, v := range projected {
		rows[i] = model.ProjectionRow{
			Year:             i + 1,
			ProjectedRevenue: v,
			FittedRevenue:    fitted[i],
		}
	}

	res := model.Result{
		Inputs:            in,
		Projection:        rows,
		MultipleValuation: MultipleValuation(in.AnnualRevenue, in.IndustryMultiple),
		DCFValuation:      DCF(projected, in.DiscountRatePercent),
	}
	if !finiteResult(res) {
		return model.Result{}, fmt.Errorf("valuation: %w: annual_revenue = %g overflows the valuation",
			model.ErrInvalidInput, in.AnnualRevenue)
	}
	return res, nil
}

func finiteResult(res model.Result) bool {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !ok(res.MultipleValuation) || !ok(res.DCFValuation) {
		return false
	}
	for _, row := range res.Projection {
		if !ok(row.ProjectedRevenue) || !ok(row.FittedRevenue) {
			return false
		}
	}
	return true
}
