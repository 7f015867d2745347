package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/valuate/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// inputValues backs the assumptions form. huh binds to string pointers, so
// the struct lives on the heap and survives App copies.
type inputValues struct {
	revenue  string
	growth   string
	margin   string
	multiple string
	discount string
	years    string
}

func newInputValues(in model.Inputs) *inputValues {
	return &inputValues{
		revenue:  strconv.FormatFloat(in.AnnualRevenue, 'f', -1, 64),
		growth:   strconv.FormatFloat(in.GrowthRatePercent, 'f', -1, 64),
		margin:   strconv.FormatFloat(in.ProfitMarginPercent, 'f', -1, 64),
		multiple: strconv.FormatFloat(in.IndustryMultiple, 'f', -1, 64),
		discount: strconv.FormatFloat(in.DiscountRatePercent, 'f', -1, 64),
		years:    strconv.Itoa(in.HorizonYears),
	}
}

// inputs parses the form values and validates the result.
func (v *inputValues) inputs() (model.Inputs, error) {
	var errs []error
	num := func(field, s string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", field, s))
		}
		return f
	}

	in := model.Inputs{
		AnnualRevenue:       num("annual_revenue", v.revenue),
		GrowthRatePercent:   num("growth_rate_percent", v.growth),
		ProfitMarginPercent: num("profit_margin_percent", v.margin),
		IndustryMultiple:    num("industry_multiple", v.multiple),
		DiscountRatePercent: num("discount_rate_percent", v.discount),
	}
	years, err := strconv.Atoi(strings.TrimSpace(v.years))
	if err != nil {
		errs = append(errs, fmt.Errorf("horizon_years: %q is not a whole number", v.years))
	}
	in.HorizonYears = years

	if len(errs) > 0 {
		return model.Inputs{}, errors.Join(errs...)
	}
	return in, in.Validate()
}

// floatIn returns a huh validator accepting numbers in [lo, hi].
func floatIn(lo, hi float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if f < lo || f > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}

func atLeast(lo float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if f < lo {
			return fmt.Errorf("must be at least %g", lo)
		}
		return nil
	}
}

func intIn(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func newInputForm(v *inputValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Startup assumptions").
				Description("Revenue in $M. Percentages as whole numbers."),
			huh.NewInput().
				Title("Annual revenue ($M)").
				Value(&v.revenue).
				Validate(atLeast(0)),
			huh.NewInput().
				Title("Expected growth rate (%)").
				Value(&v.growth).
				Validate(floatIn(model.MinGrowthRatePercent, model.MaxGrowthRatePercent)),
			huh.NewInput().
				Title("Profit margin (%)").
				Value(&v.margin).
				Validate(floatIn(model.MinProfitMarginPercent, model.MaxProfitMarginPercent)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Industry valuation multiple (x)").
				Value(&v.multiple).
				Validate(floatIn(model.MinIndustryMultiple, model.MaxIndustryMultiple)),
			huh.NewInput().
				Title("Discount rate (%)").
				Value(&v.discount).
				Validate(floatIn(model.MinDiscountRatePercent, model.MaxDiscountRatePercent)),
			huh.NewInput().
				Title("Projection horizon (years)").
				Value(&v.years).
				Validate(intIn(model.MinHorizonYears, model.MaxHorizonYears)),
		),
	).WithShowHelp(true)
}

func (a *App) openForm() {
	a.formVals = newInputValues(a.inputs)
	a.form = newInputForm(a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		in, err := a.formVals.inputs()
		a.form, a.formVals = nil, nil
		if err != nil {
			a.flash = "Invalid assumptions: " + err.Error()
			return a, nil
		}
		a.inputs = in
		a.flash = "Assumptions updated"
		cmd := a.recompute()
		return a, cmd
	case huh.StateAborted:
		a.form, a.formVals = nil, nil
		return a, nil
	}
	return a, cmd
}
