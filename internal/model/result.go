package model

// ProjectionRow is one year of the revenue projection.
type ProjectionRow struct {
	Year             int     `json:"year"`
	ProjectedRevenue float64 `json:"projected_revenue"`
	FittedRevenue    float64 `json:"fitted_revenue"`
}

// Result is the full output of one valuation run.
type Result struct {
	Inputs            Inputs          `json:"inputs"`
	Projection        []ProjectionRow `json:"projection"`
	MultipleValuation float64         `json:"multiple_valuation"`
	DCFValuation      float64         `json:"dcf_valuation"`
}

// ProjectedSeries returns the projected revenue column in year order.
func (r Result) ProjectedSeries() []float64 {
	out := make([]float64, len(r.Projection))
	for i, row := range r.Projection {
		out[i] = row.ProjectedRevenue
	}
	return out
}

// FittedSeries returns the fitted revenue column in year order.
func (r Result) FittedSeries() []float64 {
	out := make([]float64, len(r.Projection))
	for i, row := range r.Projection {
		out[i] = row.FittedRevenue
	}
	return out
}

// ValuationLow and ValuationHigh bound the reported valuation range.
func (r Result) ValuationLow() float64 {
	return min(r.MultipleValuation, r.DCFValuation)
}

// ValuationHigh is the larger of the two valuations.
func (r Result) ValuationHigh() float64 {
	return max(r.MultipleValuation, r.DCFValuation)
}
