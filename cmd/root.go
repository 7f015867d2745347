package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/valuate/internal/config"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/pipeline"
	"github.com/theirongolddev/valuate/internal/scenario"
	"github.com/theirongolddev/valuate/internal/simulate"

	"github.com/spf13/cobra"
)

var (
	flagRevenue  float64
	flagGrowth   float64
	flagMargin   float64
	flagMultiple float64
	flagDiscount float64
	flagYears    int
	flagScenario string
	flagSeed     uint64
	flagSamples  int
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "valuate",
	Short: "Startup valuation estimator",
	Long: "Estimate a startup's value from revenue, growth, an industry multiple and a discount rate:\n" +
		"projected revenue, a fitted trend, a DCF figure and a revenue multiple valuation.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64VarP(&flagRevenue, "revenue", "r", model.DefaultAnnualRevenue, "Annual revenue ($M)")
	pf.Float64VarP(&flagGrowth, "growth", "g", model.DefaultGrowthRatePercent, "Annual growth rate (%)")
	pf.Float64Var(&flagMargin, "margin", model.DefaultProfitMarginPercent, "Profit margin (%)")
	pf.Float64VarP(&flagMultiple, "multiple", "m", model.DefaultIndustryMultiple, "Industry revenue multiple")
	pf.Float64VarP(&flagDiscount, "discount", "d", model.DefaultDiscountRatePercent, "Discount rate (%)")
	pf.IntVarP(&flagYears, "years", "y", model.DefaultHorizonYears, "Projection horizon in years")
	pf.StringVarP(&flagScenario, "scenario", "s", "", "Load assumptions from a .toml or .yaml scenario file")
	pf.Uint64Var(&flagSeed, "seed", 0, "Monte Carlo seed (0 seeds from the clock)")
	pf.IntVar(&flagSamples, "samples", simulate.DefaultSamples, "Monte Carlo draws")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// runContext is the resolved configuration for one invocation.
type runContext struct {
	cfg      config.Config
	inputs   model.Inputs
	opts     simulate.Options
	scenario string
}

// resolve layers the inputs: config defaults, then the scenario file, then
// any flag the user set explicitly.
func resolve(cmd *cobra.Command) (runContext, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return runContext{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return runContext{}, err
	}

	rc := runContext{cfg: cfg, inputs: cfg.Defaults, opts: cfg.SimulateOptions()}

	if flagScenario != "" {
		sc, err := scenario.Load(flagScenario, rc.inputs)
		if err != nil {
			return runContext{}, err
		}
		rc.inputs = sc.Inputs
		rc.scenario = sc.Name
	}

	flags := cmd.Flags()
	if flags.Changed("revenue") {
		rc.inputs.AnnualRevenue = flagRevenue
	}
	if flags.Changed("growth") {
		rc.inputs.GrowthRatePercent = flagGrowth
	}
	if flags.Changed("margin") {
		rc.inputs.ProfitMarginPercent = flagMargin
	}
	if flags.Changed("multiple") {
		rc.inputs.IndustryMultiple = flagMultiple
	}
	if flags.Changed("discount") {
		rc.inputs.DiscountRatePercent = flagDiscount
	}
	if flags.Changed("years") {
		rc.inputs.HorizonYears = flagYears
	}
	if flags.Changed("seed") {
		rc.opts.Seed = flagSeed
	}
	if flags.Changed("samples") {
		rc.opts.Samples = flagSamples
	}

	if err := rc.inputs.Validate(); err != nil {
		return runContext{}, err
	}
	return rc, nil
}

// analyze resolves the inputs and runs the full pipeline.
func analyze(cmd *cobra.Command) (runContext, pipeline.Analysis, error) {
	rc, err := resolve(cmd)
	if err != nil {
		return runContext{}, pipeline.Analysis{}, err
	}
	an, err := pipeline.Run(rc.inputs, rc.opts, rc.cfg.Simulation.Bins)
	if err != nil {
		return runContext{}, pipeline.Analysis{}, err
	}
	return rc, an, nil
}

func progressf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
