// Package model defines domain types for valuate inputs and results.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the sentinel wrapped by every input validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Default assumptions.
const (
	DefaultAnnualRevenue       = 5.0
	DefaultGrowthRatePercent   = 20.0
	DefaultProfitMarginPercent = 15.0
	DefaultIndustryMultiple    = 5.0
	DefaultDiscountRatePercent = 10.0
	DefaultHorizonYears        = 5
)

// Range bounds for each input.
const (
	MinGrowthRatePercent   = 1.0
	MaxGrowthRatePercent   = 100.0
	MinProfitMarginPercent = 1.0
	MaxProfitMarginPercent = 50.0
	MinIndustryMultiple    = 1.0
	MaxIndustryMultiple    = 20.0
	MinDiscountRatePercent = 5.0
	MaxDiscountRatePercent = 20.0
	MinHorizonYears        = 1
	MaxHorizonYears        = 30
)

// Inputs holds the assumptions for one valuation. Revenue figures are in $M.
type Inputs struct {
	AnnualRevenue       float64 `json:"annual_revenue" toml:"annual_revenue" yaml:"annual_revenue"`
	GrowthRatePercent   float64 `json:"growth_rate_percent" toml:"growth_rate_percent" yaml:"growth_rate_percent"`
	ProfitMarginPercent float64 `json:"profit_margin_percent" toml:"profit_margin_percent" yaml:"profit_margin_percent"`
	IndustryMultiple    float64 `json:"industry_multiple" toml:"industry_multiple" yaml:"industry_multiple"`
	DiscountRatePercent float64 `json:"discount_rate_percent" toml:"discount_rate_percent" yaml:"discount_rate_percent"`
	HorizonYears        int     `json:"horizon_years" toml:"horizon_years" yaml:"horizon_years"`
}

// DefaultInputs returns the stock assumptions.
func DefaultInputs() Inputs {
	return Inputs{
		AnnualRevenue:       DefaultAnnualRevenue,
		GrowthRatePercent:   DefaultGrowthRatePercent,
		ProfitMarginPercent: DefaultProfitMarginPercent,
		IndustryMultiple:    DefaultIndustryMultiple,
		DiscountRatePercent: DefaultDiscountRatePercent,
		HorizonYears:        DefaultHorizonYears,
	}
}

// RangeError reports a single out-of-range field. Max is +Inf for fields
// without an upper bound.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%s = %g, must be >= %g", e.Field, e.Value, e.Min)
	}
	return fmt.Sprintf("%s = %g, must be in [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *RangeError) Unwrap() error { return ErrInvalidInput }

// Validate checks every field and returns all violations joined, or nil.
// NaN and infinities fail every range check.
func (in Inputs) Validate() error {
	var errs []error
	check := func(field string, v, lo, hi float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
			errs = append(errs, &RangeError{Field: field, Value: v, Min: lo, Max: hi})
		}
	}

	check("annual_revenue", in.AnnualRevenue, 0, math.Inf(1))
	check("growth_rate_percent", in.GrowthRatePercent, MinGrowthRatePercent, MaxGrowthRatePercent)
	check("profit_margin_percent", in.ProfitMarginPercent, MinProfitMarginPercent, MaxProfitMarginPercent)
	check("industry_multiple", in.IndustryMultiple, MinIndustryMultiple, MaxIndustryMultiple)
	check("discount_rate_percent", in.DiscountRatePercent, MinDiscountRatePercent, MaxDiscountRatePercent)
	check("horizon_years", float64(in.HorizonYears), MinHorizonYears, MaxHorizonYears)

	return errors.Join(errs...)
}
