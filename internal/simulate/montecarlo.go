// Package simulate produces the synthetic Monte Carlo valuation spread used
// by the decorative charts and the simulation export. Nothing in here feeds
// back into the valuation itself.
package simulate

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Default simulation settings.
const (
	DefaultSamples       = 1000
	DefaultSpreadPercent = 20.0
	DefaultBins          = 50
)

// Options controls one simulation run.
type Options struct {
	Samples       int
	SpreadPercent float64
	Seed          uint64 // 0 seeds from the clock
}

// DefaultOptions returns the stock simulation settings.
func DefaultOptions() Options {
	return Options{
		Samples:       DefaultSamples,
		SpreadPercent: DefaultSpreadPercent,
	}
}

// Sample is one set of simulated valuations in $M.
type Sample struct {
	Center float64
	Sigma  float64
	Seed   uint64
	Values []float64
}

// Run draws opts.Samples values from Normal(center, center*spread).
func Run(center float64, opts Options) Sample {
	if opts.Samples <= 0 {
		opts.Samples = DefaultSamples
	}
	if opts.SpreadPercent < 0 {
		opts.SpreadPercent = DefaultSpreadPercent
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sigma := center * opts.SpreadPercent / 100
	if sigma < 0 {
		sigma = -sigma
	}

	s := Sample{
		Center: center,
		Sigma:  sigma,
		Seed:   seed,
		Values: make([]float64, opts.Samples),
	}

	if sigma == 0 {
		for i := range s.Values {
			s.Values[i] = center
		}
		return s
	}

	dist := distuv.Normal{
		Mu:    center,
		Sigma: sigma,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
	for i := range s.Values {
		s.Values[i] = dist.Rand()
	}
	return s
}
