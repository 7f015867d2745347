package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/valuate/internal/config"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	themeName := cfg.Appearance.Theme
	revenue := strconv.FormatFloat(cfg.Defaults.AnnualRevenue, 'f', -1, 64)
	multiple := strconv.FormatFloat(cfg.Defaults.IndustryMultiple, 'f', -1, 64)
	samples := strconv.Itoa(cfg.Simulation.Samples)
	exportDir := cfg.Export.Dir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to valuate!").
				Description("These settings are stored in "+config.Path()+"."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default annual revenue ($M)").
				Value(&revenue).
				Validate(setupFloat(0, -1)),
			huh.NewInput().
				Title("Default industry multiple").
				Value(&multiple).
				Validate(setupFloat(model.MinIndustryMultiple, model.MaxIndustryMultiple)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monte Carlo draws").
				Value(&samples).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("enter a positive whole number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Export directory").
				Value(&exportDir),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	cfg.Appearance.Theme = themeName
	cfg.Defaults.AnnualRevenue, _ = strconv.ParseFloat(strings.TrimSpace(revenue), 64)
	cfg.Defaults.IndustryMultiple, _ = strconv.ParseFloat(strings.TrimSpace(multiple), 64)
	cfg.Simulation.Samples, _ = strconv.Atoi(strings.TrimSpace(samples))
	if dir := strings.TrimSpace(exportDir); dir != "" {
		cfg.Export.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `valuate setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

// setupFloat validates a number in [lo, hi]; hi < lo means no upper bound.
func setupFloat(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if v < lo || (hi >= lo && v > hi) {
			if hi < lo {
				return fmt.Errorf("must be at least %g", lo)
			}
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}
