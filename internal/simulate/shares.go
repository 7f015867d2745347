package simulate

import "gonum.org/v1/gonum/floats"

// RevenueShares returns each period's percentage of the series total, the
// data behind the revenue share (pie) chart. A zero total yields zeros.
func RevenueShares(series []float64) []float64 {
	out := make([]float64, len(series))
	total := floats.Sum(series)
	if total == 0 {
		return out
	}
	for i, v := range series {
		out[i] = v / total * 100
	}
	return out
}
