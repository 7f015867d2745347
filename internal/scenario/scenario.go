// Package scenario loads valuation assumptions from TOML or YAML files.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/theirongolddev/valuate/internal/model"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .toml, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// file is the on-disk shape. Pointers distinguish "absent" from zero so
// absent fields keep the base value.
type file struct {
	Name                string   `toml:"name" yaml:"name"`
	AnnualRevenue       *float64 `toml:"annual_revenue" yaml:"annual_revenue"`
	GrowthRatePercent   *float64 `toml:"growth_rate_percent" yaml:"growth_rate_percent"`
	ProfitMarginPercent *float64 `toml:"profit_margin_percent" yaml:"profit_margin_percent"`
	IndustryMultiple    *float64 `toml:"industry_multiple" yaml:"industry_multiple"`
	DiscountRatePercent *float64 `toml:"discount_rate_percent" yaml:"discount_rate_percent"`
	HorizonYears        *int     `toml:"horizon_years" yaml:"horizon_years"`
}

// Scenario is a named set of inputs.
type Scenario struct {
	Name   string
	Path   string
	Inputs model.Inputs
}

// Load reads path and overlays its fields on base. The merged inputs are
// validated before returning.
func Load(path string, base model.Inputs) (Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // scenario path is supplied by the local user
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return Scenario{}, fmt.Errorf("parsing scenario %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &f); err != nil {
			return Scenario{}, fmt.Errorf("parsing scenario %s: %w", filepath.Base(path), err)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	in := f.apply(base)
	if err := in.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", filepath.Base(path), err)
	}

	name := f.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Scenario{Name: name, Path: path, Inputs: in}, nil
}

func (f file) apply(in model.Inputs) model.Inputs {
	if f.AnnualRevenue != nil {
		in.AnnualRevenue = *f.AnnualRevenue
	}
	if f.GrowthRatePercent != nil {
		in.GrowthRatePercent = *f.GrowthRatePercent
	}
	if f.ProfitMarginPercent != nil {
		in.ProfitMarginPercent = *f.ProfitMarginPercent
	}
	if f.IndustryMultiple != nil {
		in.IndustryMultiple = *f.IndustryMultiple
	}
	if f.DiscountRatePercent != nil {
		in.DiscountRatePercent = *f.DiscountRatePercent
	}
	if f.HorizonYears != nil {
		in.HorizonYears = *f.HorizonYears
	}
	return in
}
